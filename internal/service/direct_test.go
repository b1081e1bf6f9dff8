// ABOUTME: Tests for the storage-less direct-API path of the services.
// ABOUTME: With a NullStore every mutation must reach the server or fail.
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kraftlog/internal/api"
	"kraftlog/internal/models"
	"kraftlog/internal/storage"
	syncengine "kraftlog/internal/sync"
)

// recordingServer records "METHOD /path" for every request and serves
// registered JSON bodies for GETs.
type recordingServer struct {
	mu        sync.Mutex
	requests  []string
	responses map[string]any
	srv       *httptest.Server
}

func newRecordingServer(t *testing.T) *recordingServer {
	t.Helper()
	rs := &recordingServer{responses: map[string]any{}}
	rs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, r.Method+" "+r.URL.Path)
		body, ok := rs.responses[r.URL.Path]
		rs.mu.Unlock()

		if r.Method == http.MethodGet {
			if !ok {
				http.NotFound(w, r)
				return
			}
			_ = json.NewEncoder(w).Encode(body)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(rs.srv.Close)
	return rs
}

func (rs *recordingServer) respond(path string, body any) {
	rs.mu.Lock()
	rs.responses[path] = body
	rs.mu.Unlock()
}

func (rs *recordingServer) seen() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.requests...)
}

// setupDirectServices wires the services over a NullStore, the backend
// for platforms without persistent storage.
func setupDirectServices(t *testing.T, serverURL string) (*Routines, *Sessions) {
	t.Helper()
	client := api.New(serverURL, func(context.Context) (string, error) {
		return "", nil
	}, nil)
	store := storage.NewNullStore()
	engine := syncengine.NewEngine(store, client, syncengine.NewPublisher(), nil)
	return NewRoutines(store, engine, nil), NewSessions(store, engine, nil)
}

func TestDirectCreateRoutinePostsImmediately(t *testing.T) {
	rs := newRecordingServer(t)
	routines, _ := setupDirectServices(t, rs.srv.URL)

	r, err := routines.CreateRoutine(uuid.New(), "Push Day", "")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, []string{"POST /routines"}, rs.seen())
}

func TestDirectCreateRoutineSurfacesFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	routines, _ := setupDirectServices(t, srv.URL)

	_, err := routines.CreateRoutine(uuid.New(), "Push Day", "")
	assert.Error(t, err, "a mutation that never reached the server must not report success")
}

func TestDirectDeleteRoutineSendsDelete(t *testing.T) {
	rs := newRecordingServer(t)
	routines, _ := setupDirectServices(t, rs.srv.URL)
	id := uuid.New()

	require.NoError(t, routines.DeleteRoutine(id))
	assert.Equal(t, []string{"DELETE /routines/" + id.String()}, rs.seen())
}

func TestDirectStartSessionPostsImmediately(t *testing.T) {
	rs := newRecordingServer(t)
	_, sessions := setupDirectServices(t, rs.srv.URL)

	lr, err := sessions.StartSession(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, lr.ID)
	assert.Equal(t, []string{"POST /log-routines"}, rs.seen())
}

func TestDirectFinishSessionFetchesThenPuts(t *testing.T) {
	rs := newRecordingServer(t)
	_, sessions := setupDirectServices(t, rs.srv.URL)

	lr := models.NewLogRoutine(uuid.New(), uuid.New())
	rs.respond("/log-routines/"+lr.ID.String(), lr)

	finished, err := sessions.FinishSession(lr.ID)
	require.NoError(t, err)
	require.NotNil(t, finished.EndDatetime)
	assert.Equal(t, []string{
		"GET /log-routines/" + lr.ID.String(),
		"PUT /log-routines/" + lr.ID.String(),
	}, rs.seen())
}

func TestDirectRecordSetNumbersFromServer(t *testing.T) {
	rs := newRecordingServer(t)
	_, sessions := setupDirectServices(t, rs.srv.URL)

	leID := uuid.New()
	rs.respond("/log-exercises/"+leID.String(), models.LogExercise{
		ID: leID,
		LogSets: []models.LogSet{
			{ID: uuid.New(), LogExerciseID: leID, SetNumber: 1, Reps: 8},
			{ID: uuid.New(), LogExerciseID: leID, SetNumber: 2, Reps: 8},
		},
	})

	set, err := sessions.RecordSet(leID, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, set.SetNumber)
	assert.Contains(t, rs.seen(), "POST /log-sets")
}

func TestDirectDeleteSetRenumbersOnServer(t *testing.T) {
	rs := newRecordingServer(t)
	_, sessions := setupDirectServices(t, rs.srv.URL)

	leID := uuid.New()
	doomed := models.LogSet{ID: uuid.New(), LogExerciseID: leID, SetNumber: 1, Reps: 8}
	survivor := models.LogSet{ID: uuid.New(), LogExerciseID: leID, SetNumber: 2, Reps: 10}
	rs.respond("/log-sets/"+doomed.ID.String(), doomed)
	rs.respond("/log-exercises/"+leID.String(), models.LogExercise{
		ID:      leID,
		LogSets: []models.LogSet{survivor},
	})

	require.NoError(t, sessions.DeleteSet(doomed.ID))

	seen := rs.seen()
	assert.Contains(t, seen, "DELETE /log-sets/"+doomed.ID.String())
	assert.Contains(t, seen, "PUT /log-sets/"+survivor.ID.String(),
		"the surviving set must be renumbered on the server")
}

func TestDirectHistoryFetchesFromServer(t *testing.T) {
	rs := newRecordingServer(t)
	_, sessions := setupDirectServices(t, rs.srv.URL)

	userID := uuid.New()
	rs.respond("/log-routines/user/"+userID.String(), []models.LogRoutine{
		*models.NewLogRoutine(uuid.New(), userID),
	})

	history, err := sessions.History(context.Background(), userID, false)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
