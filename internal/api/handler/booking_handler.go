package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logisco/courierfront/internal/core/service"
)

// Pages hands out the per-session page state.
type Pages interface {
	Get(sessionID string) *service.Workspace
}

type BookingHandler struct {
	sessions SessionResolver
	pages    Pages
	booking  *service.BookingService
}

func NewBookingHandler(sessions SessionResolver, pages Pages, booking *service.BookingService) *BookingHandler {
	return &BookingHandler{sessions: sessions, pages: pages, booking: booking}
}

func (h *BookingHandler) wizard(c echo.Context) (*service.Wizard, error) {
	sid, err := ctxSessionID(c)
	if err != nil {
		return nil, err
	}
	return h.pages.Get(sid).Booking, nil
}

// View renders the wizard.
//
// @Summary      Booking wizard state
// @Tags         booking
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.WizardView
// @Router       /v1/booking [get]
func (h *BookingHandler) View(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.View())
}

// Advance validates the current step's form and moves forward.
//
// @Summary      Advance the wizard
// @Tags         booking
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]any  true  "Inputs of the active step"
// @Success      200   {object}  service.WizardView
// @Failure      422   {object}  ErrorEnvelope
// @Router       /v1/booking/advance [post]
func (h *BookingHandler) Advance(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var form map[string]any
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := w.Advance(c.Request().Context(), formValues(form))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Retreat moves one step back.
//
// @Summary      Go back one step
// @Tags         booking
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.WizardView
// @Router       /v1/booking/retreat [post]
func (h *BookingHandler) Retreat(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Retreat())
}

// Reset clears the draft.
//
// @Summary      Start over
// @Tags         booking
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.WizardView
// @Router       /v1/booking/reset [post]
func (h *BookingHandler) Reset(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Reset())
}

// Select picks one carrier option.
//
// @Summary      Select a carrier quote
// @Tags         booking
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      selectRequest  true  "Option index"
// @Success      200   {object}  service.WizardView
// @Failure      409   {object}  ErrorEnvelope
// @Failure      422   {object}  ErrorEnvelope
// @Router       /v1/booking/select [post]
func (h *BookingHandler) Select(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req selectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := w.SelectQuote(*req.Index)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Pincode autofills city and state for a pincode.
//
// @Summary      Pincode autofill
// @Tags         booking
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      pincodeRequest  true  "Pincode input"
// @Success      200   {object}  service.PincodeResult
// @Router       /v1/booking/pincode [post]
func (h *BookingHandler) Pincode(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req pincodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res := w.LookupPincode(c.Request().Context(), service.PincodeSide(req.Side), req.Pincode, req.Counterpart)
	return c.JSON(http.StatusOK, res)
}

// Submit creates the booking. Guests get 428 and must pass the OTP check.
//
// @Summary      Submit the booking
// @Tags         booking
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  confirmationResponse
// @Failure      409  {object}  ErrorEnvelope
// @Failure      428  {object}  ErrorEnvelope
// @Failure      502  {object}  ErrorEnvelope
// @Router       /v1/booking/submit [post]
func (h *BookingHandler) Submit(c echo.Context) error {
	sess, err := ctxSession(c, h.sessions)
	if err != nil {
		return err
	}
	w := h.pages.Get(sess.ID).Booking

	conf, err := h.booking.Submit(c.Request().Context(), sess, w)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, confirmationResponse{Confirmation: conf, Wizard: w.View()})
}

// RequestOTP texts a one-time code to the phone.
//
// @Summary      Request an OTP
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Phone and name"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  ErrorEnvelope
// @Router       /v1/auth/otp/request [post]
func (h *BookingHandler) RequestOTP(c echo.Context) error {
	if _, err := ctxSessionID(c); err != nil {
		return err
	}
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.booking.RequestOTP(c.Request().Context(), req.Phone, req.FullName); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent"})
}

// VerifyOTP upgrades the session and retries a suspended submission.
//
// @Summary      Verify an OTP
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      otpVerifyRequest  true  "Phone, code and name"
// @Success      200   {object}  verifyResponse
// @Failure      422   {object}  ErrorEnvelope
// @Router       /v1/auth/otp/verify [post]
func (h *BookingHandler) VerifyOTP(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	sid, _ := ctxSessionID(c)

	var req otpVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	v, err := h.booking.VerifyOTP(c.Request().Context(), sid, w, req.Phone, req.OTP, req.FullName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifyResponse{
		sessionResponse: newSessionResponse(v.Token, v.Session, ""),
		Resubmitted:     v.Resubmitted,
		Confirmation:    v.Confirmation,
		SubmitError:     v.SubmitError,
		Wizard:          w.View(),
	})
}
