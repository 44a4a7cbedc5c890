package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	appVersion string
)

func heartbeat(c echo.Context) error {
	// Heartbeat function to assess service status. Immediately return 200
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": appVersion,
	})
}

func login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	// The gate is a plain credential comparison against the configured pair
	if req.Email != config.Credentials.Email || req.Password != config.Credentials.Password {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	token, err := createToken(req.Email)
	if err != nil {
		logger(c.Request().Context(), err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func listPatients(c echo.Context) error {
	ctx := c.Request().Context()

	patients, err := patientStore.Load(ctx)
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	// Compose the derived, filtered, sorted view for the injected
	// reference date
	view := composeView(patients, c.QueryParam("q"), c.QueryParam("filter"), refDate)

	return c.JSON(http.StatusOK, view)
}

func createPatient(c echo.Context) error {
	ctx := c.Request().Context()

	var req NewPatientRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	// Name and birth date are the only required fields
	if strings.TrimSpace(req.Name) == "" || req.BirthDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and birthDate are required"})
	}

	birth, err := parseDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	patients, err := patientStore.Load(ctx)
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	patient := Patient{
		Id:           uuid.NewString(),
		Name:         req.Name,
		GuardianName: req.GuardianName,
		Phone:        req.Phone,
		BirthDate:    Date{birth},
	}

	if err := patientStore.Save(ctx, append(patients, patient)); err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, patient)
}

func checkInPatient(c echo.Context) error {
	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	// Default the visit date to the reference date
	visitDate := refDate
	if req.Date != "" {
		var err error
		visitDate, err = parseDate(req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}

	return mutatePatient(c, func(p *Patient) {
		p.LastCheckIn = &Date{visitDate}
	})
}

func undoCheckIn(c echo.Context) error {
	return mutatePatient(c, func(p *Patient) {
		p.LastCheckIn = nil
	})
}

// mutatePatient loads the collection, applies the change to the patient
// named in the path, and saves the collection back.
func mutatePatient(c echo.Context, mutate func(*Patient)) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	patients, err := patientStore.Load(ctx)
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	found := false
	for i := range patients {
		if patients[i].Id == id {
			mutate(&patients[i])
			found = true
			break
		}
	}

	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("patient %s not found", id)})
	}

	if err := patientStore.Save(ctx, patients); err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}

func deletePatient(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	patients, err := patientStore.Load(ctx)
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	remaining := patients[:0]
	for _, p := range patients {
		if p.Id != id {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == len(patients) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("patient %s not found", id)})
	}

	if err := patientStore.Save(ctx, remaining); err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusNoContent)
}

func importPatients(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger(ctx, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	defer src.Close()

	// Delimited text or workbook, decided by extension
	var rows [][]string
	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		rows, err = readDelimited(src)
	} else {
		rows, err = readWorkbook(src)
	}
	if err != nil {
		logger(ctx, err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unable to read file"})
	}

	imported, summary, err := normalizeRows(rows, config.ImportColumns)
	if err != nil {
		// Column detection failure blocks the whole import
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	if len(imported) > 0 {
		patients, err := patientStore.Load(ctx)
		if err != nil {
			logger(ctx, err)
			return c.NoContent(http.StatusInternalServerError)
		}
		if err := patientStore.Save(ctx, append(patients, imported...)); err != nil {
			logger(ctx, err)
			return c.NoContent(http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, summary)
}
