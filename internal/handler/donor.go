package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blood-donor-network/internal/model"
	"github.com/iliyamo/blood-donor-network/internal/queue"
	"github.com/iliyamo/blood-donor-network/internal/repository"
	"github.com/iliyamo/blood-donor-network/internal/service"
)

// DonorHandler serves the public donor registry and the admin-only delete.
type DonorHandler struct {
	Donors *repository.DonorRepo
	Events service.EventPublisher
}

func NewDonorHandler(d *repository.DonorRepo, ev service.EventPublisher) *DonorHandler {
	if ev == nil {
		ev = service.NoopPublisher{}
	}
	return &DonorHandler{Donors: d, Events: ev}
}

// List handles GET /api/blood-donors.  blood_group matches exactly, location
// is a case-insensitive substring; empty parameters are ignored.
func (h *DonorHandler) List(c echo.Context) error {
	f := model.DonorFilter{
		BloodGroup: strings.TrimSpace(c.QueryParam("blood_group")),
		Location:   strings.TrimSpace(c.QueryParam("location")),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	donors, err := h.Donors.List(ctx, f)
	if err != nil {
		c.Logger().Errorf("Fetch Donors Error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, donors)
}

// Create handles POST /api/blood-donors with a JSON or form body.
func (h *DonorHandler) Create(c echo.Context) error {
	var req createDonorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	d := model.Donor{
		Name:       strings.TrimSpace(req.Name),
		BloodGroup: strings.TrimSpace(req.BloodGroup),
		Phone:      strings.TrimSpace(req.Phone),
		Location:   strings.TrimSpace(req.Location),
		Age:        req.Age.ptr(),
	}
	if v := strings.TrimSpace(req.LastDonationDate); v != "" {
		d.LastDonationDate = &v
	}
	if err := d.Validate(); errors.Is(err, model.ErrMissingFields) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Donors.Insert(ctx, d)
	if err != nil {
		c.Logger().Errorf("Add Donor Error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if !model.IsKnownBloodGroup(d.BloodGroup) {
		// stored as given; only the front end restricts the choice
		c.Logger().Warnf("donor %d registered with unrecognised blood group %q", id, d.BloodGroup)
	}
	h.publish(c, queue.DonorEvent{Type: queue.DonorRegistered, DonorID: id, BloodGroup: d.BloodGroup, Location: d.Location})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Blood donor registered successfully"})
}

// Delete handles DELETE /api/blood-donors/:id.  An id that is not an integer
// cannot match any row and is reported as not found.
func (h *DonorHandler) Delete(c echo.Context) error {
	notFound := echo.Map{"success": false, "message": "Donor not found"}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, notFound)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Donors.Delete(ctx, id)
	if err != nil {
		c.Logger().Errorf("Delete Donor Error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, notFound)
	}

	h.publish(c, queue.DonorEvent{Type: queue.DonorDeleted, DonorID: id})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Deleted successfully"})
}

// publish is best-effort: the write has already been committed, so a broker
// failure is logged and the response is unchanged.
func (h *DonorHandler) publish(c echo.Context, ev queue.DonorEvent) {
	ev.OccurredAt = time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := h.Events.PublishDonorEvent(ctx, ev); err != nil {
		c.Logger().Warnf("publish %s for donor %d: %v", ev.Type, ev.DonorID, err)
	}
}
