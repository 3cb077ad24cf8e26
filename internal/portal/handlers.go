package portal

import (
	"fmt"
	"net/http"

	"github.com/Awais417/passwordreset/internal/checkout"
)

// resolveUserID extracts the user identifier for the checkout page: the
// userId/id query parameter wins and refreshes the remembered hint, the
// signed cookie is the fallback.
func (p *Portal) resolveUserID(w http.ResponseWriter, r *http.Request) string {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = r.URL.Query().Get("id")
	}
	if userID != "" {
		p.identity.RememberUser(w, userID)
		return userID
	}
	return p.identity.UserHint(r)
}

// pageState returns the visitor's page state, resetting it when the user
// identifier changed since the last render so a stale status or coupon never
// leaks across users.
func (p *Portal) pageState(w http.ResponseWriter, r *http.Request, userID string) *checkout.PageState {
	flowID := p.identity.FlowID(w, r)

	st := p.store.GetOrCreate(flowID)
	if st.UserID != userID {
		if st.UserID != "" {
			p.store.Delete(flowID)
			st = p.store.GetOrCreate(flowID)
		}
		st.UserID = userID
	}
	return st
}

func (p *Portal) handlePayment(w http.ResponseWriter, r *http.Request) {
	userID := p.resolveUserID(w, r)
	st := p.pageState(w, r, userID)

	// Single entry effect: the mount fetch runs once per page lifetime,
	// re-renders are free.
	st.Status.EnsureLoaded(r.Context(), userID)

	quote := checkout.NewQuote(p.config.Pricing.BaseAmount, st.Coupon.Discount())
	user := st.Status.User()

	data := map[string]interface{}{
		"UserID":         userID,
		"Currency":       p.config.Pricing.Currency,
		"Symbol":         currencySymbol(p.config.Pricing.Currency),
		"Quote":          quote,
		"StatusState":    st.Status.State(),
		"StatusError":    st.Status.ErrorMessage(),
		"User":           user,
		"AlreadyPremium": user.HasPremium(),
		"CouponState":    st.Coupon.State(),
		"CouponApplied":  st.Coupon.Applied(),
		"CouponMessage":  st.Coupon.Message(),
		"CheckoutError":  st.Checkout.ErrorMessage(),
		"PayLabel":       fmt.Sprintf("Pay %s%.2f", currencySymbol(p.config.Pricing.Currency), quote.Final),
	}

	p.renderTemplate(w, r, "payment.html", "Upgrade to Premium", data)
}

func (p *Portal) handleApplyCoupon(w http.ResponseWriter, r *http.Request) {
	userID := p.resolveUserID(w, r)
	st := p.pageState(w, r, userID)

	st.Coupon.Apply(r.Context(), r.FormValue("code"))

	http.Redirect(w, r, "/payment", http.StatusSeeOther)
}

func (p *Portal) handleRemoveCoupon(w http.ResponseWriter, r *http.Request) {
	userID := p.resolveUserID(w, r)
	st := p.pageState(w, r, userID)

	st.Coupon.Remove()

	http.Redirect(w, r, "/payment", http.StatusSeeOther)
}

func (p *Portal) handleCheckout(w http.ResponseWriter, r *http.Request) {
	userID := p.resolveUserID(w, r)
	st := p.pageState(w, r, userID)

	couponCode := ""
	if applied := st.Coupon.Applied(); applied != nil {
		couponCode = applied.Code
	}

	amount := checkout.ChargeAmount(p.config.Pricing.BaseAmount, st.Coupon.Discount())

	url, ok := st.Checkout.Start(r.Context(), userID, amount, p.config.Pricing.Currency, couponCode)
	if !ok {
		// Failure stays on the page; the message renders inline and the
		// user must re-trigger.
		http.Redirect(w, r, "/payment", http.StatusSeeOther)
		return
	}

	// The webhook confirms payment out of band; refresh the status once
	// after a short delay so a quick return sees it.
	st.Status.ScheduleRefresh(userID)

	// Hand control to the hosted checkout. This navigation is terminal for
	// the page.
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (p *Portal) handleSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	result := checkout.Verify(r.Context(), p.client, sessionID)

	data := map[string]interface{}{
		"Verified": result.Verified,
		"Message":  result.Message,
		"User":     result.User,
	}
	if result.User != nil {
		data["PaidOn"] = result.User.PaidOn()
	}

	p.renderTemplate(w, r, "success.html", "Payment Result", data)
}

func (p *Portal) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Email":    r.URL.Query().Get("email"),
		"Token":    r.URL.Query().Get("token"),
		"Password": "",
	}
	p.renderTemplate(w, r, "reset_password.html", "Reset Password", data)
}

func (p *Portal) handleResetPasswordPost(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	token := r.FormValue("token")
	password := r.FormValue("password")

	outcome := p.reset.Submit(r.Context(), email, token, password)

	data := map[string]interface{}{
		"Email":    email,
		"Token":    token,
		"Password": "",
	}
	if outcome.Success {
		data["Success"] = outcome.Message
	} else {
		data["Error"] = outcome.Message
		if outcome.KeepPassword {
			data["Password"] = password
		}
	}

	p.renderTemplate(w, r, "reset_password.html", "Reset Password", data)
}
