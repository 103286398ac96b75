package http

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/ports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxEvidenceBytes límite de la imagen de evidencia recibida por multipart.
const maxEvidenceBytes = 10 << 20

// bindWithEvidence acepta JSON plano o multipart/form-data con el JSON en el campo "payload"
// y la imagen en el campo "evidence".
func bindWithEvidence(c *fiber.Ctx, out interface{}) (*ports.Upload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, c.BodyParser(out)
	}
	if payload := c.FormValue("payload"); payload != "" {
		if err := json.Unmarshal([]byte(payload), out); err != nil {
			return nil, err
		}
	}
	fh, err := c.FormFile("evidence")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxEvidenceBytes))
	if err != nil {
		return nil, err
	}
	return &ports.Upload{Filename: fh.Filename, Data: data}, nil
}

// ledgerQuery lee los filtros comunes de listado. from/to aceptan RFC3339 o YYYY-MM-DD.
func ledgerQuery(c *fiber.Ctx) (dto.LedgerQuery, error) {
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	var err error
	if q.From, err = parseTimeParam(c.Query("from")); err != nil {
		return q, err
	}
	if q.To, err = parseTimeParam(c.Query("to")); err != nil {
		return q, err
	}
	return q, nil
}

func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func pageQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.Normalize()
	return p
}
