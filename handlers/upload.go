package handlers

import (
	"io"
	"mime/multipart"

	"glowbook/services/storage"
	"glowbook/utils"
)

// readUpload drains a multipart file into memory, reading one byte past the
// size cap so the file store can reject oversized files with a clear error.
func readUpload(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, utils.WrapError(utils.KindInvalidInput, err, "failed to read uploaded file")
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, storage.MaxImageSize+1))
	if err != nil {
		return nil, utils.WrapError(utils.KindInvalidInput, err, "failed to read uploaded file")
	}
	return data, nil
}
