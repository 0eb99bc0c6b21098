package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/state"
)

func panel(w io.Writer, title string, lines ...string) {
	fmt.Fprintf(w, "--- %s ---\n", title)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}

// renderState prints, in order: the signed-in panel when a user is known,
// the error panel when the last request failed, and the response panel
// when the last request returned a non-empty body.
func renderState(w io.Writer, s state.State) {
	if s.Session.SignedIn && s.Session.User != nil {
		panel(w, "Currently Signed In",
			"User ID: "+string(s.Session.User.ID),
			"Email: "+s.Session.User.Email,
		)
	}
	if s.Err != "" {
		panel(w, "Error", s.Err)
	}
	if s.Response != nil && s.Response.Truthy() {
		panel(w, "Response", s.Response.Indent())
	}
}

// renderForm shows the current input. The password is masked.
func renderForm(w io.Writer, f state.Form) {
	panel(w, "Form",
		"Email: "+f.Email,
		"Password: "+strings.Repeat("*", len(f.Password)),
		"User ID: "+f.TargetUserID,
	)
}

func renderHistory(w io.Writer, recs []models.HistoryRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No requests yet.")
		return
	}
	for _, r := range recs {
		outcome := "ok"
		if !r.Succeeded() {
			outcome = r.Error
		}
		status := "-"
		if r.StatusCode != 0 {
			status = fmt.Sprint(r.StatusCode)
		}
		fmt.Fprintf(w, "%s  %-12s %-6s %-10s %3s  %6s  %s\n",
			r.StartedAt.Local().Format(time.DateTime),
			r.Action,
			r.Method,
			"/"+strings.TrimPrefix(r.Endpoint, "/"),
			status,
			r.Duration.Round(time.Millisecond),
			outcome,
		)
	}
}
