package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/otp"
	"github.com/prasadvm/storekart/internal/service"
)

// VerifyHTTP covers the OTP dispatch and OTP-gated session issuance routes.
// The generated code is returned in the response for the client to verify,
// which is the contract the storefront client was built against.
type VerifyHTTP struct {
	Svc      *service.AuthService
	Sender   otp.Sender
	Producer *mykafka.Producer
}

func (h *VerifyHTTP) sendOTP(c echo.Context, mobile string) (string, error) {
	code, err := otp.Generate()
	if err != nil {
		return "", err
	}
	if h.Sender != nil {
		if err := h.Sender.Send(mobile, code); err != nil {
			return "", err
		}
	} else {
		logging.FromContext(c.Request().Context()).Warn("sms gateway not configured, otp not dispatched", "mobile", mobile)
	}
	return code, nil
}

func (h *VerifyHTTP) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "verify.otp")

	var req struct {
		Mobile   string `json:"mobile"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_otp_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Mobile == "" || req.Name == "" || req.Password == "" {
		l.Warn("verify_otp_error", "status", 400)
		return echo.NewHTTPError(http.StatusBadRequest, "Missing data. Please restart signup.")
	}

	code, err := h.sendOTP(c, req.Mobile)
	if err != nil {
		l.Error("verify_otp_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "OTP sent successfully",
		"otp":     code,
	})
}

func (h *VerifyHTTP) VerifyOTPSeller(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "verify.otp_seller")

	var req struct {
		Mobile string `json:"mobile"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_otp_seller_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Mobile == "" {
		l.Warn("verify_otp_seller_error", "status", 400)
		return echo.NewHTTPError(http.StatusBadRequest, "Missing data. Please restart signup.")
	}

	code, err := h.sendOTP(c, req.Mobile)
	if err != nil {
		l.Error("verify_otp_seller_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "OTP sent successfully",
		"otp":     code,
	})
}

func (h *VerifyHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "verify.login")

	var req struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, user, err := h.Svc.LoginUser(ctx, req.Mobile, req.Password)
	if err != nil {
		return respondErr(c, l, "login_error", err)
	}

	publish(c, h.Producer, mykafka.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"authToken": token,
		"userId":    user.ID,
	})
}

func (h *VerifyHTTP) SellerLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "verify.seller_login")

	var req struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("seller_login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, seller, err := h.Svc.LoginSeller(ctx, req.Mobile, req.Password)
	if err != nil {
		return respondErr(c, l, "seller_login_error", err)
	}

	publish(c, h.Producer, mykafka.TopicUserEvents, seller.ID.String(), map[string]any{
		"type":     "seller_logged_in",
		"sellerID": seller.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"authToken": token,
		"sellerId":  seller.ID,
	})
}
