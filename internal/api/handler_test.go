package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy/statement-engine/internal/engine"
)

const sampleStatement = `ACME CARD SERVICES
Statement Closing Date: 04/20/2024
New Balance: $1,250.75
Minimum Payment Due: $35.00
Payment Due Date: 05/15/2024

Date      Description                          Amount
04/12     85C BAKERY CAFE USA BELLEVUE WA      10.50
04/14     COFFEE ROASTERS SEATTLE WA           6.25
`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Now = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	return NewApp(engine.New(opts, nil), nil)
}

func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestConvertTextUpload(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartUpload(t, "statement_2024.txt", []byte(sampleStatement), map[string]string{
		"csv": "true",
	})
	req := httptest.NewRequest("POST", "/convert", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var cr ConvertResponse
	require.NoError(t, json.Unmarshal(raw, &cr))
	assert.True(t, cr.Success)
	require.NotNil(t, cr.Result)
	assert.Equal(t, 2, cr.Count)
	require.NotNil(t, cr.Result.Metadata.Balance)
	assert.Equal(t, "1250.75", cr.Result.Metadata.Balance.StringFixed(2))
	assert.Contains(t, cr.CSV, "85C BAKERY CAFE")
}

func TestConvertMissingFile(t *testing.T) {
	app := newTestApp(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("csv", "true"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestConvertUnsupportedType(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartUpload(t, "statement.docx", []byte("hello"), nil)
	req := httptest.NewRequest("POST", "/convert", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 422, resp.StatusCode)
}
