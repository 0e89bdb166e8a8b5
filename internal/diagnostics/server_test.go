package diagnostics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/caninterface"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/dictionary"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/wireformat"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestServer_Healthz(t *testing.T) {
	srv := NewServer(testLogger(), NewSnapshot())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_Dictionaries_ListsAllProtocols(t *testing.T) {
	snap := NewSnapshot()
	srv := NewServer(testLogger(), snap)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dictionaries", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CAN-RAW")
	assert.Contains(t, w.Body.String(), "OBD")
	assert.Contains(t, w.Body.String(), "COMPLEX-DATA")
}

func TestServer_DictionaryByProtocol_Found(t *testing.T) {
	snap := NewSnapshot()
	d := dictionary.NewCanDecoderDictionary()
	d.InsertRawFrame(caninterface.ChannelID(0), 0x100)
	snap.OnChangeOfActiveDictionary(wireformat.ProtocolCanRaw, d)

	srv := NewServer(testLogger(), snap)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dictionaries/CAN-RAW", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"present":true`)
}

func TestServer_DictionaryByProtocol_NotFound(t *testing.T) {
	srv := NewServer(testLogger(), NewSnapshot())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dictionaries/NOT-A-PROTOCOL", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RequestIDHeaderIsEchoed(t *testing.T) {
	srv := NewServer(testLogger(), NewSnapshot())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "test-request-id")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, "test-request-id", w.Header().Get(requestIDHeader))
}
