package api

import (
	"net/http"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/handler"
	"github.com/dmitrymomot/attendance-report/svc/reporting"
)

type (
	empty struct{}

	personRequest struct {
		ChineseName string `json:"chinese_name"`
		EnglishName string `json:"english_name"`
	}

	personPath struct {
		ChineseName string `path:"chinese_name"`
	}

	reasonPath struct {
		ChineseName string `path:"chinese_name"`
		Reason      string `path:"reason"`
	}

	recipientRequest struct {
		Address string `json:"address"`
	}

	recipientPath struct {
		Address string `path:"address"`
	}

	reportBody struct {
		Report string `json:"report"`
	}

	messageBody struct {
		Message string `json:"message"`
	}

	profileView struct {
		Sender        string `json:"sender"`
		Header        string `json:"header"`
		Footer        string `json:"footer"`
		HasCredential bool   `json:"has_credential"`
	}
)

func newProfileView(p reporting.Profile) profileView {
	return profileView{
		Sender:        p.Sender,
		Header:        p.Header,
		Footer:        p.Footer,
		HasCredential: p.Credential != "",
	}
}

type handlers struct {
	svc *reporting.Service
}

func (h *handlers) health(handler.Context, empty) handler.Response {
	return handler.JSON(map[string]string{"status": "ok"})
}

func (h *handlers) reasons(handler.Context, empty) handler.Response {
	return handler.JSON(attendance.Catalog())
}

func (h *handlers) listPeople(handler.Context, empty) handler.Response {
	return handler.JSON(h.svc.People())
}

func (h *handlers) addPerson(_ handler.Context, req personRequest) handler.Response {
	person, err := h.svc.AddPerson(req.ChineseName, req.EnglishName)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(person, handler.WithStatus(http.StatusCreated))
}

func (h *handlers) removePerson(_ handler.Context, req personPath) handler.Response {
	if err := h.svc.RemovePerson(req.ChineseName); err != nil {
		return fail(err)
	}
	return handler.Empty()
}

func (h *handlers) setReason(selected bool) handler.HandlerFunc[reasonPath] {
	return func(_ handler.Context, req reasonPath) handler.Response {
		reason, err := attendance.ParseReason(req.Reason)
		if err != nil {
			return fail(err)
		}
		if err := h.svc.SetReason(req.ChineseName, reason, selected); err != nil {
			return fail(err)
		}
		return handler.Empty()
	}
}

func (h *handlers) clearReasons(handler.Context, empty) handler.Response {
	h.svc.ClearReasons()
	return handler.Empty()
}

func (h *handlers) snapshot(handler.Context, empty) handler.Response {
	return handler.JSON(h.svc.Snapshot())
}

func (h *handlers) listRecipients(handler.Context, empty) handler.Response {
	return handler.JSON(h.svc.Recipients())
}

func (h *handlers) addRecipient(_ handler.Context, req recipientRequest) handler.Response {
	if err := h.svc.AddRecipient(req.Address); err != nil {
		return fail(err)
	}
	return handler.JSON(h.svc.Recipients(), handler.WithStatus(http.StatusCreated))
}

func (h *handlers) removeRecipient(_ handler.Context, req recipientPath) handler.Response {
	if err := h.svc.RemoveRecipient(req.Address); err != nil {
		return fail(err)
	}
	return handler.Empty()
}

func (h *handlers) getProfile(handler.Context, empty) handler.Response {
	return handler.JSON(newProfileView(h.svc.Profile()))
}

func (h *handlers) updateProfile(_ handler.Context, req reporting.ProfileUpdate) handler.Response {
	return handler.JSON(newProfileView(h.svc.UpdateProfile(req)))
}

func (h *handlers) generateReport(handler.Context, empty) handler.Response {
	return handler.JSON(reportBody{Report: h.svc.GenerateReport()}, handler.WithStatus(http.StatusCreated))
}

func (h *handlers) getReport(handler.Context, empty) handler.Response {
	return handler.JSON(reportBody{Report: h.svc.Report()})
}

func (h *handlers) editReport(_ handler.Context, req reportBody) handler.Response {
	h.svc.SetReportBody(req.Report)
	return handler.JSON(reportBody{Report: h.svc.Report()})
}

func (h *handlers) sendReport(ctx handler.Context, _ empty) handler.Response {
	if err := h.svc.SendReport(ctx); err != nil {
		return fail(err)
	}
	return handler.JSON(messageBody{Message: reporting.MsgReportSent})
}

func (h *handlers) saveSettings(ctx handler.Context, _ empty) handler.Response {
	if err := h.svc.Save(ctx); err != nil {
		return fail(err)
	}
	return handler.JSON(messageBody{Message: reporting.MsgSaved})
}
