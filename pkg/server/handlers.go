package server

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/dtnitsch/sachai/models"
	"github.com/dtnitsch/sachai/pkg/accordion"
	"github.com/dtnitsch/sachai/pkg/capture"
	"github.com/dtnitsch/sachai/pkg/db"
	"github.com/dtnitsch/sachai/pkg/factcheck"
	"github.com/dtnitsch/sachai/pkg/orchestrator"
	"github.com/dtnitsch/sachai/pkg/render"
	"github.com/dtnitsch/sachai/pkg/selection"
	"github.com/dtnitsch/sachai/pkg/view"
	"github.com/gin-gonic/gin"
)

// MsgNotSaved is shown when a report rendered but could not be stored.
const MsgNotSaved = "The report could not be saved. Please try again."

type layoutData struct {
	Input    string
	Label    string
	Loading  bool
	ReportID string
	Alerts   []string
	Results  template.HTML
}

func newLayoutData(controls view.ControlState, results *view.MemoryRegion) (layoutData, error) {
	html, err := results.HTML()
	if err != nil {
		return layoutData{}, err
	}
	return layoutData{
		Input:   controls.Input,
		Label:   controls.Label,
		Loading: controls.Loading,
		// Region content is produced by the escaping renderer templates.
		Results: template.HTML(html),
	}, nil
}

// persist returns a hook that stores each rendered report and records its id.
func (s *Server) persist(deployment string, id *string) orchestrator.ReportHook {
	return func(_ context.Context, text string, report *models.Report) error {
		newID, err := s.history.InsertReport(deployment, text, capture.DetectLanguage(text), report)
		if err != nil {
			return err
		}
		*id = newID
		return nil
	}
}

// applyAccordion syncs a rendered page report with the open set. Each
// report starts with a fresh controller.
func applyAccordion(region *view.MemoryRegion, reportID, open string) error {
	ctrl, err := accordion.ParseOpen(open)
	if err != nil {
		return err
	}
	ctrl.Apply(region.Document(), "/reports/"+reportID)
	region.Redecorate()
	return nil
}

func (s *Server) loadReport(id string) (*db.ReportRecord, error) {
	return s.history.GetReport(id)
}

func (s *Server) handleIndex(c *gin.Context) {
	if id := c.Query("report"); id != "" {
		c.Redirect(http.StatusSeeOther, "/reports/"+id)
		return
	}
	c.HTML(http.StatusOK, "index", layoutData{Label: view.LabelIdle})
}

func (s *Server) handleCheck(c *gin.Context) {
	log := s.logger.With("handler", "check")
	region := view.NewMemoryRegion(view.Icons)

	priorID := c.PostForm("report")
	if priorID != "" {
		if rec, err := s.loadReport(priorID); err == nil {
			if err := (render.Page{}).Render(rec.Report, region); err == nil {
				_ = applyAccordion(region, rec.ID, "")
			}
		} else {
			log.Warn("prior report not found", "report", priorID, "error", err)
			priorID = ""
		}
	}

	session, alerts := orchestrator.NewPage(s.page, region, log)
	var reportID string
	session.SetReportHook(s.persist(models.DeploymentPage, &reportID))

	_, err := session.Submit(c.Request.Context(), c.PostForm("text"))
	if err == nil && reportID != "" {
		c.Redirect(http.StatusSeeOther, "/reports/"+reportID)
		return
	}

	status := http.StatusOK
	switch {
	case err == nil:
		status = http.StatusInternalServerError
	case errors.Is(err, factcheck.ErrEmptyInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, orchestrator.ErrBusy):
		status = http.StatusConflict
	default:
		status = http.StatusBadGateway
	}

	data, herr := newLayoutData(session.Controls().State(), region)
	if herr != nil {
		c.String(http.StatusInternalServerError, herr.Error())
		return
	}
	data.ReportID = priorID
	data.Alerts = alerts.Alerts()
	if err == nil {
		data.Alerts = append(data.Alerts, MsgNotSaved)
	}
	c.HTML(status, "index", data)
}

func (s *Server) handleReport(c *gin.Context) {
	id := c.Param("id")
	rec, err := s.loadReport(id)
	if err != nil {
		if errors.Is(err, db.ErrReportNotFound) {
			c.String(http.StatusNotFound, "report not found")
			return
		}
		s.logger.Error("failed to load report", "report", id, "error", err)
		c.String(http.StatusInternalServerError, "failed to load report")
		return
	}

	region := view.NewMemoryRegion(view.Icons)
	if err := (render.Page{}).Render(rec.Report, region); err != nil {
		s.logger.Warn("stored report did not render", "report", id, "error", err)
	}
	if err := applyAccordion(region, rec.ID, c.Query("open")); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	data, err := newLayoutData(view.ControlState{Input: rec.Input, Label: view.LabelIdle}, region)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	data.ReportID = rec.ID
	c.HTML(http.StatusOK, "index", data)
}

// handleAPIFactCheck relays a JSON request to the upstream API. A body
// carrying "answer" goes to the popup endpoint, otherwise to the page one.
func (s *Server) handleAPIFactCheck(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON body"})
		return
	}

	client, text := s.page, body[models.FieldText]
	if answer, ok := body[models.FieldAnswer]; ok {
		client, text = s.popup, answer
	}

	report, err := client.Submit(c.Request.Context(), text)
	if err != nil {
		s.logger.Error("relay failed", "error", err)
		c.JSON(relayStatus(err), models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func relayStatus(err error) int {
	var httpErr *factcheck.HTTPError
	switch {
	case errors.Is(err, factcheck.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		return httpErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleSelection(c *gin.Context) {
	var payload models.SelectionPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.String(http.StatusBadRequest, "invalid selection")
		return
	}

	if pending, err := s.store.Pending(c.Request.Context()); err == nil && pending {
		s.logger.Info("replacing pending selection")
	}
	if err := s.store.Put(c.Request.Context(), payload.SelectedText); err != nil {
		if errors.Is(err, selection.ErrEmptySelection) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to store selection", "error", err)
		c.String(http.StatusInternalServerError, "failed to store selection")
		return
	}
	c.Redirect(http.StatusSeeOther, "/popup")
}

func (s *Server) handlePopup(c *gin.Context) {
	log := s.logger.With("handler", "popup")
	region := view.NewMemoryRegion(view.Icons)
	session := orchestrator.NewPopup(s.popup, region, log)
	var reportID string
	session.SetReportHook(s.persist(models.DeploymentPopup, &reportID))

	submitted, _, err := session.AutoSubmit(c.Request.Context(), s.store)
	if err != nil && !submitted {
		log.Error("failed to take pending selection", "error", err)
		c.String(http.StatusInternalServerError, "failed to read pending selection")
		return
	}
	s.renderPopup(c, session, region)
}

func (s *Server) handlePopupSubmit(c *gin.Context) {
	log := s.logger.With("handler", "popup")
	region := view.NewMemoryRegion(view.Icons)
	session := orchestrator.NewPopup(s.popup, region, log)
	var reportID string
	session.SetReportHook(s.persist(models.DeploymentPopup, &reportID))

	// Errors are shown inline in the results region.
	_, _ = session.Submit(c.Request.Context(), c.PostForm("text"))
	s.renderPopup(c, session, region)
}

// WritePopup writes the standalone popup document for controls and results.
func WritePopup(w io.Writer, controls view.ControlState, results *view.MemoryRegion) error {
	data, err := newLayoutData(controls, results)
	if err != nil {
		return err
	}
	return layouts.ExecuteTemplate(w, "popup", data)
}

func (s *Server) renderPopup(c *gin.Context, session *orchestrator.Session, region *view.MemoryRegion) {
	data, err := newLayoutData(session.Controls().State(), region)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.HTML(http.StatusOK, "popup", data)
}
