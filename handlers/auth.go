package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/services/provider"
	"glowbook/services/user"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tokenCookieMaxAge matches the token TTL so cookie and token expire together.
var tokenCookieMaxAge = int(auth.TokenTTL / time.Second)

// LoginHandler handles POST /api/auth/login. On success it sets the session
// token as an HttpOnly cookie and returns the account.
func (h *HandlerBundle) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.NewError(utils.KindInvalidInput, "Email and password are required."))
		return
	}

	usr, token, err := h.Users.Login(req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, err)
		return
	}

	setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": usr, "token": token})
}

// LogoutHandler handles POST /api/auth/logout by clearing the session cookie.
func (h *HandlerBundle) LogoutHandler(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// SignupClientHandler handles POST /api/auth/signup/client. The request is
// multipart form data with an optional profile_image file.
func (h *HandlerBundle) SignupClientHandler(c *gin.Context) {
	logger := utils.GetLogger()

	form, err := parseSignupForm(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	imageName, err := h.saveProfileImage(c, form.image)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	usr, err := h.Users.RegisterClient(user.Registration{
		Email:        form.email,
		Password:     form.password,
		Name:         form.name,
		DateOfBirth:  form.dateOfBirth,
		Phone:        form.phone,
		ProfileImage: imageName,
	})
	if err != nil {
		logger.Warn("Client signup failed", zap.String("email", form.email), zap.Error(err))
		utils.JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, usr)
}

// SignupProviderHandler handles POST /api/auth/signup/service-provider.
func (h *HandlerBundle) SignupProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	form, err := parseSignupForm(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	imageName, err := h.saveProfileImage(c, form.image)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	reg := provider.Registration{
		Email:          form.email,
		Password:       form.password,
		Name:           form.name,
		DateOfBirth:    form.dateOfBirth,
		Phone:          form.phone,
		ProfileImage:   imageName,
		Ethnicity:      c.PostForm("ethnicity"),
		HairColor:      c.PostForm("hair_color"),
		Certifications: c.PostForm("certifications"),
		Specialties:    c.PostForm("specialties"),
		Address:        c.PostForm("address"),
	}
	if raw := c.PostForm("experience_years"); raw != "" {
		years, convErr := strconv.Atoi(raw)
		if convErr != nil || years < 0 {
			utils.JSONError(c, utils.NewError(utils.KindInvalidInput, "experience_years must be a non-negative number."))
			return
		}
		reg.ExperienceYears = &years
	}

	account, err := h.Providers.Register(reg)
	if err != nil {
		logger.Warn("Provider signup failed", zap.String("email", form.email), zap.Error(err))
		utils.JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// SignupAdminHandler handles POST /api/auth/signup/admin. Only an existing
// admin can mint another admin account.
func (h *HandlerBundle) SignupAdminHandler(c *gin.Context) {
	logger := utils.GetLogger()

	if err := requireRole(c, models.RoleAdmin); err != nil {
		utils.JSONError(c, err)
		return
	}

	form, err := parseSignupForm(c)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	usr, err := h.Users.RegisterAdmin(user.Registration{
		Email:       form.email,
		Password:    form.password,
		Name:        form.name,
		DateOfBirth: form.dateOfBirth,
		Phone:       form.phone,
	})
	if err != nil {
		logger.Warn("Admin signup failed", zap.String("email", form.email), zap.Error(err))
		utils.JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, usr)
}

type signupForm struct {
	email       string
	password    string
	name        string
	phone       string
	dateOfBirth *time.Time
	image       *multipart.FileHeader
}

func parseSignupForm(c *gin.Context) (*signupForm, error) {
	form := &signupForm{
		email:    c.PostForm("email"),
		password: c.PostForm("password"),
		name:     c.PostForm("name"),
		phone:    c.PostForm("phone"),
	}
	if form.email == "" || form.password == "" || form.name == "" {
		return nil, utils.NewError(utils.KindInvalidInput, "Email, password and name are required.")
	}
	if raw := c.PostForm("date_of_birth"); raw != "" {
		dob, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, utils.NewError(utils.KindInvalidInput, "date_of_birth must be formatted YYYY-MM-DD.")
		}
		form.dateOfBirth = &dob
	}
	if file, err := c.FormFile("profile_image"); err == nil {
		form.image = file
	}
	return form, nil
}

// saveProfileImage stores an optional uploaded image and returns its name.
func (h *HandlerBundle) saveProfileImage(c *gin.Context, header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", nil
	}
	data, err := readUpload(header)
	if err != nil {
		return "", err
	}
	return h.Files.Save(c.Request.Context(), data, header.Filename, header.Header.Get("Content-Type"))
}

func setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, true)
}
