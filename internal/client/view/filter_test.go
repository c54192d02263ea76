package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotask/zerotask/internal/client/models"
)

func fixture() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Alpha", Description: "first letter", Status: models.StatusPending, CreatedAt: 300},
		{ID: "2", Title: "Beta", Description: "second letter", Status: models.StatusCompleted, CreatedAt: 200},
		{ID: "3", Title: "Gamma", Description: "contains alpha rays", Status: models.StatusPending, CreatedAt: 100},
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestComputeVisible_EmptyQueryAllFilter_IsIdentity(t *testing.T) {
	tasks := fixture()
	got := ComputeVisible(tasks, "", FilterAll)
	assert.Equal(t, tasks, got)
}

func TestComputeVisible_QueryMatchesTitleOrDescription(t *testing.T) {
	got := ComputeVisible(fixture(), "alp", FilterAll)
	// "Alpha" by title, "Gamma" by description
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestComputeVisible_QueryIsCaseFolded(t *testing.T) {
	got := ComputeVisible(fixture(), "ALPHA", FilterAll)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestComputeVisible_QueryIsTrimmed(t *testing.T) {
	got := ComputeVisible(fixture(), "  beta  ", FilterAll)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestComputeVisible_StatusFilters(t *testing.T) {
	tasks := fixture()

	active := ComputeVisible(tasks, "", FilterActive)
	assert.Equal(t, []string{"1", "3"}, ids(active))

	completed := ComputeVisible(tasks, "", FilterCompleted)
	assert.Equal(t, []string{"2"}, ids(completed))
}

func TestComputeVisible_ActiveKeepsInProgress(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Status: models.StatusInProgress, Title: "x"},
	}
	got := ComputeVisible(tasks, "", FilterActive)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestComputeVisible_QueryAndFilterCombine(t *testing.T) {
	got := ComputeVisible(fixture(), "letter", FilterCompleted)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestComputeVisible_PreservesInputOrder(t *testing.T) {
	// deliberately not sorted by CreatedAt: the filter must not re-sort
	tasks := []models.Task{
		{ID: "b", Title: "task", CreatedAt: 1, Status: models.StatusPending},
		{ID: "a", Title: "task", CreatedAt: 9, Status: models.StatusPending},
		{ID: "c", Title: "task", CreatedAt: 5, Status: models.StatusPending},
	}
	got := ComputeVisible(tasks, "task", FilterAll)
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestComputeVisible_Deterministic(t *testing.T) {
	tasks := fixture()
	first := ComputeVisible(tasks, "a", FilterActive)
	second := ComputeVisible(tasks, "a", FilterActive)
	require.Equal(t, first, second)
}

func TestComputeVisible_DoesNotMutateInput(t *testing.T) {
	tasks := fixture()
	_ = ComputeVisible(tasks, "beta", FilterCompleted)
	assert.Equal(t, fixture(), tasks)
}

func TestComputeVisible_EmptyInput(t *testing.T) {
	got := ComputeVisible(nil, "x", FilterAll)
	assert.Empty(t, got)
}
