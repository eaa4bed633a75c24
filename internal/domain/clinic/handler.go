package clinic

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/staff"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/clinic", h.GetClinic)
	api.DELETE("/clinic", h.ClearModel)

	api.GET("/rooms", h.ListRooms)
	api.GET("/rooms/:number/patients", h.ListRoomPatients)

	api.POST("/patients", h.RegisterPatient)
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:serial", h.GetPatient)
	api.PUT("/patients/:serial/room", h.AssignRoom)
	api.POST("/patients/:serial/visits", h.AddVisit)
	api.POST("/patients/:serial/care-team", h.AssignStaff)
	api.DELETE("/patients/:serial/care-team/:staffSerial", h.UnassignStaff)
	api.POST("/patients/:serial/discharge", h.Discharge)

	api.POST("/staff", h.RegisterStaff)
	api.GET("/staff", h.ListClinicalStaff)
	api.DELETE("/staff/:serial", h.DeactivateStaff)

	api.GET("/reports/staff-patient-counts", h.ReportStaffPatientCounts)
	api.GET("/reports/discharged-over-year", h.ReportDischargedOverYear)
	api.GET("/reports/frequent-visitors", h.ReportFrequentVisitors)
	api.GET("/reports/staff-with-recent-visits", h.ReportStaffWithRecentVisits)
}

// businessError maps registry errors onto HTTP statuses: lookups that
// miss are 404, soft business-rule rejections are 409, everything else
// (hard argument/state violations) is 400.
func businessError(err error) error {
	switch {
	case errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrStaffNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case IsRejection(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

func (h *Handler) patientFromParam(c echo.Context) (*patient.Patient, error) {
	serial, err := strconv.Atoi(c.Param("serial"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid serial")
	}
	p := h.svc.Store().PatientBySerial(serial)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return p, nil
}

// -- Clinic --

func (h *Handler) GetClinic(c echo.Context) error {
	st := h.svc.Store()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":     st.Name,
		"rooms":    len(st.Rooms()),
		"patients": len(st.Patients()),
		"staff":    len(st.Staff()),
	})
}

func (h *Handler) ClearModel(c echo.Context) error {
	h.svc.ClearModel()
	return c.NoContent(http.StatusNoContent)
}

// -- Rooms --

func (h *Handler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Store().Rooms())
}

func (h *Handler) ListRoomPatients(c echo.Context) error {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room number")
	}
	r := h.svc.Store().RoomByNumber(number)
	if r == nil {
		return echo.NewHTTPError(http.StatusNotFound, "room not found")
	}
	return c.JSON(http.StatusOK, h.svc.PatientsInRoom(r))
}

// -- Patients --

type registerPatientRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dob, err := time.Parse(patient.DOBLayout, req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be in M/d/yyyy format")
	}

	candidate, err := patient.New(h.svc.Store().PatientDirectory(), req.FirstName, req.LastName, dob)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	registered, err := h.svc.RegisterPatient(candidate)
	if err != nil {
		return businessError(err)
	}
	return c.JSON(http.StatusCreated, registered)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	active := h.svc.ActivePatients()
	return c.JSON(http.StatusOK, pagination.NewResponse(pagination.Page(active, pg), len(active), pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.patientFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

type assignRoomRequest struct {
	RoomName string `json:"room_name" validate:"required"`
}

func (h *Handler) AssignRoom(c echo.Context) error {
	p, err := h.patientFromParam(c)
	if err != nil {
		return err
	}
	var req assignRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AssignPatientToRoom(p, req.RoomName); err != nil {
		return businessError(err)
	}
	return c.JSON(http.StatusOK, p)
}

type addVisitRequest struct {
	Date            string  `json:"date" validate:"required"`
	Time            string  `json:"time" validate:"required"`
	ChiefComplaint  string  `json:"chief_complaint" validate:"required"`
	BodyTemperature float64 `json:"body_temperature" validate:"required"`
}

func (h *Handler) AddVisit(c echo.Context) error {
	p, err := h.patientFromParam(c)
	if err != nil {
		return err
	}
	var req addVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	registeredAt, err := time.Parse("2006-01-02 15:04:05", req.Date+" "+req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be yyyy-MM-dd and time HH:mm:ss")
	}
	if err := h.svc.AddVisitRecord(p, registeredAt, req.ChiefComplaint, req.BodyTemperature); err != nil {
		return businessError(err)
	}
	return c.JSON(http.StatusCreated, p.Visits)
}

type assignStaffRequest struct {
	StaffSerial int `json:"staff_serial" validate:"required,gt=0"`
}

func (h *Handler) AssignStaff(c echo.Context) error {
	p, err := h.patientFromParam(c)
	if err != nil {
		return err
	}
	var req assignStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	member := h.svc.Store().StaffBySerial(req.StaffSerial)
	if member == nil {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	if err := h.svc.AssignStaffToPatient(p, member); err != nil {
		return businessError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UnassignStaff(c echo.Context) error {
	serial, err := strconv.Atoi(c.Param("serial"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid serial")
	}
	staffSerial, err := strconv.Atoi(c.Param("staffSerial"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid staff serial")
	}
	if err := h.svc.UnassignStaffFromPatient(staffSerial, serial); err != nil {
		return businessError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type dischargeRequest struct {
	ApprovingStaffSerial int `json:"approving_staff_serial" validate:"required,gt=0"`
}

func (h *Handler) Discharge(c echo.Context) error {
	p, err := h.patientFromParam(c)
	if err != nil {
		return err
	}
	var req dischargeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	approver := h.svc.Store().StaffBySerial(req.ApprovingStaffSerial)
	if approver == nil {
		return echo.NewHTTPError(http.StatusNotFound, "approving staff member not found")
	}
	// Title check belongs to the caller, not the registry.
	if !approver.IsPhysician() || approver.Deactivated {
		return echo.NewHTTPError(http.StatusConflict, "discharge must be approved by an active physician")
	}
	if err := h.svc.SendPatientHome(p, approver); err != nil {
		return businessError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// -- Staff --

type registerStaffRequest struct {
	JobTitle       string `json:"job_title" validate:"required"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	EducationLevel string `json:"education_level" validate:"required"`
	License        string `json:"license" validate:"omitempty,len=10,numeric"`
}

func (h *Handler) RegisterStaff(c echo.Context) error {
	var req registerStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	level, err := staff.ParseEducationLevel(req.EducationLevel)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var member *staff.Staff
	if staff.ValidLicense(req.License) {
		member, err = staff.NewClinical(h.svc.Store().StaffSequence(),
			req.JobTitle, req.FirstName, req.LastName, level, req.License)
	} else {
		member, err = staff.NewNonClinical(h.svc.Store().StaffSequence(),
			req.JobTitle, req.FirstName, req.LastName, level)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterStaff(member); err != nil {
		return businessError(err)
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *Handler) ListClinicalStaff(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ActiveClinicalStaff())
}

func (h *Handler) DeactivateStaff(c echo.Context) error {
	serial, err := strconv.Atoi(c.Param("serial"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid serial")
	}
	if err := h.svc.DeactivateStaff(serial); err != nil {
		return businessError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Reports --

func (h *Handler) ReportStaffPatientCounts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.StaffPatientCounts())
}

func (h *Handler) ReportDischargedOverYear(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.DischargedOverYear())
}

func (h *Handler) ReportFrequentVisitors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.FrequentVisitors())
}

func (h *Handler) ReportStaffWithRecentVisits(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.StaffWithRecentPatientVisits())
}
