// internal/app/features/employeedash/actions.go
package employeedash

import (
	"errors"
	"net/http"
	"strings"
	"time"

	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	workdaystore "github.com/dalemusser/attendhub/internal/app/store/workday"
	"github.com/dalemusser/attendhub/internal/app/system/gate"
	"github.com/dalemusser/attendhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/attendhub/internal/app/system/inputval"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type leaveInput struct {
	From   string `validate:"required,datetime=2006-01-02" label:"Start date"`
	To     string `validate:"required,datetime=2006-01-02" label:"End date"`
	Reason string `validate:"notblank,max=500" label:"Reason"`
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	gate.RedirectTo(w, r, path+"?notice="+notice)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST checkin / checkout                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	me := h.me(ctx, r)

	at, err := h.Workday.CheckIn(ctx, me.EmployeeID)
	if errors.Is(err, workdaystore.ErrAlreadyCheckedIn) {
		redirectWithNotice(w, r, gate.EmployeeDashboardPath, "already-in")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check in failed", err, "Could not check you in.", gate.EmployeeDashboardPath)
		return
	}
	h.syncRoster(h.Employees.RecordCheckIn(ctx, me.EmployeeID, at), me.EmployeeID)
	h.Log.Info("employee checked in", zap.String("employee_id", me.EmployeeID), zap.String("at", at))
	redirectWithNotice(w, r, gate.EmployeeDashboardPath, "checked-in")
}

func (h *Handler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	me := h.me(ctx, r)

	at, err := h.Workday.CheckOut(ctx, me.EmployeeID)
	if errors.Is(err, workdaystore.ErrAlreadyCheckedOut) {
		redirectWithNotice(w, r, gate.EmployeeDashboardPath, "already-out")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check out failed", err, "Could not check you out.", gate.EmployeeDashboardPath)
		return
	}
	h.syncRoster(h.Employees.RecordCheckOut(ctx, me.EmployeeID, at), me.EmployeeID)
	h.Log.Info("employee checked out", zap.String("employee_id", me.EmployeeID), zap.String("at", at))
	redirectWithNotice(w, r, gate.EmployeeDashboardPath, "checked-out")
}

// syncRoster logs roster update failures. Logins without a roster entry
// are expected.
func (h *Handler) syncRoster(err error, employeeID string) {
	if err == nil || errors.Is(err, employeestore.ErrNotFound) {
		return
	}
	h.Log.Warn("roster update failed", zap.String("employee_id", employeeID), zap.Error(err))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST leaves                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLeaveRequest(w http.ResponseWriter, r *http.Request) {
	leavesPath := gate.EmployeeDashboardPath + "/leaves"
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", leavesPath)
		return
	}

	in := leaveInput{
		From:   strings.TrimSpace(r.PostFormValue("from")),
		To:     strings.TrimSpace(r.PostFormValue("to")),
		Reason: htmlsanitize.PlainText(r.PostFormValue("reason")),
	}
	reRender := func(msg string) {
		data := h.base(r, tabLeaves)
		data.Leaves = h.Workday.Leaves(r.Context(), data.Me.EmployeeID)
		data.Form = leaveForm(in)
		data.Error = msg
		h.show(w, r, http.StatusUnprocessableEntity, data)
	}

	if res := inputval.Validate(in); res.HasErrors() {
		reRender(res.First())
		return
	}
	from, _ := time.Parse(dateLayout, in.From)
	to, _ := time.Parse(dateLayout, in.To)

	ctx := r.Context()
	me := h.me(ctx, r)
	req, err := h.Workday.RequestLeave(ctx, me.EmployeeID, from, to, in.Reason)
	switch {
	case errors.Is(err, workdaystore.ErrInvalidRange):
		reRender("End date must be on or after the start date.")
		return
	case errors.Is(err, workdaystore.ErrInsufficientLeave):
		reRender("You do not have enough leave days remaining.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "leave request failed", err, "Could not submit your leave request.", leavesPath)
		return
	}

	h.Log.Info("leave requested",
		zap.String("employee_id", me.EmployeeID),
		zap.String("leave_id", req.ID),
		zap.Int("days", req.Days()))
	redirectWithNotice(w, r, leavesPath, "leave-requested")
}
