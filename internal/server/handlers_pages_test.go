package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/jonathan/landing-generator/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) postForm(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	dom, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return dom
}

func TestFormPage(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dom := parseHTML(t, w)
	assert.Equal(t, 1, dom.Find("#landing-form").Length())
	assert.Equal(t, 0, dom.Find(".notice").Length())

	w = ts.do(t, http.MethodGet, "/?aviso=sin-sesion", nil)
	assert.Equal(t, MsgSessionMissing, parseHTML(t, w).Find(".notice").Text())
}

func TestFormSubmit_ValidationOrder(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm(t, "/form", url.Values{"nombre_producto": {"Tarjeta"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Por favor, seleccioná el tipo de landing", parseHTML(t, w).Find(".alert").Text())

	w = ts.postForm(t, "/form", url.Values{"tipo_landing": {"producto"}, "section_mode": {"seleccionar"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Por favor, seleccioná al menos una sección para generar", parseHTML(t, w).Find(".alert").Text())

	w = ts.postForm(t, "/form", url.Values{"tipo_landing": {"producto"}, "section_mode": {"todas"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	dom := parseHTML(t, w)
	assert.Equal(t, "Por favor, ingresá el nombre del producto o agrupador", dom.Find(".alert").Text())
	val, _ := dom.Find(`input[name="tipo_landing"][checked]`).Attr("value")
	assert.Equal(t, "producto", val, "submitted values are kept")
}

func TestFormSubmit_Success(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm(t, "/form", url.Values{
		"tipo_landing":    {"producto"},
		"section_mode":    {"todas"},
		"nombre_producto": {"Tarjeta Oro"},
		"keywords":        {"tarjeta\ncrédito"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/preview/s1", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, "s1", cookies[0].Value)

	doc := mustLoad(t, ts.store, "s1")
	require.NotNil(t, doc)
	assert.Equal(t, []string{"tarjeta", "crédito"}, doc.Keywords)
}

func TestFormSubmit_WebhookFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.gen.genErr = &webhook.Error{URL: "http://hook", StatusCode: 500, Message: "HTTP status 500"}

	w := ts.postForm(t, "/form", url.Values{
		"tipo_landing":    {"producto"},
		"nombre_producto": {"Tarjeta Oro"},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, MsgGenerationFailed, parseHTML(t, w).Find(".alert").Text())
}

func TestPreviewFromCookie(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/preview", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, missingSessionURL, w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "s1"})
	w = httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	assert.Equal(t, "/preview/s1", w.Header().Get("Location"))
}

func TestPreviewPage_MissingSessionRedirects(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/preview/unknown", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, missingSessionURL, w.Header().Get("Location"))
}

func TestPreviewPage(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t)

	w := ts.do(t, http.MethodGet, "/preview/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	dom := parseHTML(t, w)
	assert.Equal(t, "Producto", dom.Find("#badge-tipo").Text())
	assert.Equal(t, "Tarjeta Oro", dom.Find("#titulo").Text())
	assert.Equal(t, 2, dom.Find("article.card").Length())
	assert.Equal(t, "Tu tarjeta", dom.Find("#seccion-hero .contenido h1").Text())
	assert.Equal(t, 0, dom.Find("#acciones-finales").Length())
}

func TestPreviewToggle(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t)

	w := ts.do(t, http.MethodPost, "/preview/s1/sections/hero/toggle", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/preview/s1#seccion-hero", w.Header().Get("Location"))
	assert.Equal(t, types.StatusApproved, mustLoad(t, ts.store, "s1").Secciones["hero"].Estado)

	ts.do(t, http.MethodPost, "/preview/s1/sections/faqs/toggle", nil)
	w = ts.do(t, http.MethodGet, "/preview/s1", nil)
	dom := parseHTML(t, w)
	assert.Equal(t, 1, dom.Find("#acciones-finales").Length())
	assert.Equal(t, "✓ Aprobada", dom.Find("#seccion-hero .btn-aprobar").Text())

	w = ts.do(t, http.MethodPost, "/preview/gone/sections/hero/toggle", nil)
	assert.Equal(t, missingSessionURL, w.Header().Get("Location"))
}

func TestDialog(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t)

	w := ts.do(t, http.MethodGet, "/preview/s1/sections/faqs/regenerate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Regenerar: FAQs / Legales", parseHTML(t, w).Find("#modal-titulo").Text())

	w = ts.postForm(t, "/preview/s1/sections/faqs/regenerate", url.Values{"instruccion": {"más corto"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/preview/s1/sections/faqs/regenerate", w.Header().Get("Location"))

	w = ts.do(t, http.MethodGet, "/preview/s1/sections/faqs/regenerate", nil)
	dom := parseHTML(t, w)
	assert.Equal(t, "más corto", dom.Find("#chat .user").Text())
	assert.Equal(t, "Nueva FAQ", dom.Find("#contenido-actual li").Text())

	w = ts.do(t, http.MethodGet, "/preview/s1/sections/nope/regenerate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDialogSubmit_Failure(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t)
	ts.gen.regenErr = &webhook.Error{URL: "http://hook", StatusCode: 500, Message: "HTTP status 500"}

	w := ts.postForm(t, "/preview/s1/sections/faqs/regenerate", url.Values{"instruccion": {"otra"}})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	dom := parseHTML(t, w)
	assert.Equal(t, MsgRegenerationFailed, dom.Find(".alert").Text())
	assert.Equal(t, "otra", dom.Find("#instruccion").Text())
	assert.Equal(t, "- ¿Costo? Ninguno", mustLoad(t, ts.store, "s1").Secciones["faqs"].Contenido)

	ts.gen.regenErr = nil
	w = ts.postForm(t, "/preview/s1/sections/faqs/regenerate", url.Values{"instruccion": {"  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownload(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t)

	w := ts.do(t, http.MethodGet, "/preview/s1/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="landing-tarjeta-oro.txt"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Tarjeta Oro\nTipo: Landing de Producto\nGenerado: 5/3/2024\n"))
}
