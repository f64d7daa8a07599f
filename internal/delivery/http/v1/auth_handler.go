package v1

import (
	"errors"
	"net/http"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"
	"jobkit-backend/pkg/logger"
	"jobkit-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authUC  domain.AuthUsecase
	tracker *security.LoginTracker
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, strict gin.HandlerFunc, authUC domain.AuthUsecase, tracker *security.LoginTracker) {
	handler := &AuthHandler{authUC: authUC, tracker: tracker}

	auth := public.Group("/auth")
	{
		auth.POST("/register/:role", strict, handler.Register)
		auth.POST("/verify-otp", strict, handler.VerifyOTP)
		auth.POST("/resend-otp", strict, handler.ResendOTP)
		auth.POST("/login", strict, handler.Login)
		auth.POST("/refresh", handler.Refresh)
		auth.GET("/check-username", handler.CheckUsername)
	}

	protected.GET("/auth/me", handler.Me)
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @Summary      Register an account
// @Description  Creates an unverified account for the given role and emails a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role     path      string               true  "Account role"  Enums(employee, company, admin)
// @Param        account  body      domain.RegisterInput true  "Credentials"
// @Success      201      {object}  response.Response{data=domain.Account}
// @Failure      400      {object}  response.Response
// @Router       /auth/register/{role} [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	account, err := h.authUC.Register(c.Request.Context(), domain.Role(c.Param("role")), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully. Check your email for the OTP code.", account)
}

// VerifyOTP godoc
// @Summary      Verify a one-time code
// @Description  Marks the account verified and returns a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        otp  body      domain.VerifyOTPInput  true  "Code"
// @Success      200  {object}  response.Response{data=domain.Session}
// @Failure      400  {object}  response.Response
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req domain.VerifyOTPInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	session, err := h.authUC.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OTP verified successfully", session)
}

// ResendOTP godoc
// @Summary      Resend a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ResendOTPRequest  true  "Account email"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /auth/resend-otp [post]
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.authUC.ResendOTP(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "A new OTP code has been sent", nil)
}

// Login godoc
// @Summary      Log in
// @Description  Accepts an email or a username as identifier
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginInput  true  "Credentials"
// @Success      200          {object}  response.Response{data=domain.Session}
// @Failure      401          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	blocked, err := h.tracker.IsBlocked(ctx, req.Identifier, ip)
	if err != nil {
		logger.Log.Warn("Login tracker unavailable", zap.Error(err))
	}
	if blocked {
		c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
		return
	}

	session, err := h.authUC.Login(ctx, req)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized {
			nowBlocked, _, trackErr := h.tracker.RecordFailedAttempt(ctx, req.Identifier, ip, c.Request.UserAgent(), c.GetString(string(domain.KeyRequestID)), appErr.Message)
			if trackErr != nil {
				logger.Log.Warn("Failed to record login attempt", zap.Error(trackErr))
			}
			if nowBlocked {
				c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
				return
			}
		}
		c.Error(err)
		return
	}

	if err := h.tracker.ClearAttempts(ctx, req.Identifier, ip); err != nil {
		logger.Log.Warn("Failed to clear login attempts", zap.Error(err))
	}
	response.Success(c, http.StatusOK, "Login successful", session)
}

// Refresh godoc
// @Summary      Exchange a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  response.Response{data=domain.Session}
// @Failure      401      {object}  response.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	session, err := h.authUC.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Token refreshed", session)
}

// CheckUsername godoc
// @Summary      Check whether a username is taken
// @Tags         auth
// @Produce      json
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Router       /auth/check-username [get]
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	taken, err := h.authUC.CheckUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Username checked", gin.H{"username_taken": taken})
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Account}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	account, err := h.authUC.CurrentAccount(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", account)
}
