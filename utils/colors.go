package utils

import "math/rand"

// profileColors is the palette new accounts draw their avatar color from.
var profileColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#85C1E9", "#D7BDE2",
	"#A9CCE3", "#F9E79F", "#D5A6BD", "#A2D9CE", "#FAD7A0",
	"#D2B4DE", "#AED6F1", "#FADBD8", "#D5F4E6", "#FDEBD0",
	"#E8DAEF", "#D1F2EB", "#FCF3CF", "#FADBD8", "#D5F4E6",
}

// GenerateProfileColor returns a random color from the profile palette.
func GenerateProfileColor() string {
	return profileColors[rand.Intn(len(profileColors))]
}
