package panels

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan-viewer/internal/app"
	"floorplan-viewer/internal/scene"
	"floorplan-viewer/ui/canvas"
)

func testState() *app.State {
	state := app.NewState()
	state.Plan = &scene.Root{
		LocationID: "L1",
		Layers: []*scene.Layer{
			{Children: []scene.Element{
				&scene.Rect{X: 0, Y: 0, Width: 100, Height: 50},
			}},
			{Children: []scene.Element{
				&scene.Desk{DeskID: "D1", X: 10, Y: 10},
				&scene.Desk{DeskID: "D2", X: 40, Y: 10},
			}},
		},
	}
	return state
}

func TestDesksPanelSelectionReportsDesk(t *testing.T) {
	test.NewApp()
	dp := NewDesksPanel(testState())
	dp.SyncPlan()

	var got *scene.Desk
	dp.OnDeskSelected = func(desk *scene.Desk) { got = desk }

	dp.list.Select(0)
	require.NotNil(t, got, "selecting a row must invoke the callback")
	assert.Equal(t, "D1", got.DeskID)

	dp.list.Select(1)
	assert.Equal(t, "D2", got.DeskID)
}

func TestSidePanelForwardsDeskSelection(t *testing.T) {
	test.NewApp()
	sp := NewSidePanel(testState(), canvas.NewFloorplanCanvas())
	sp.SyncPlan()

	var got *scene.Desk
	sp.OnDeskSelected(func(desk *scene.Desk) { got = desk })

	sp.desksPanel.list.Select(1)
	require.NotNil(t, got)
	assert.Equal(t, "D2", got.DeskID)
}

func TestStatsPanelShowsPreview(t *testing.T) {
	test.NewApp()
	sp := NewStatsPanel(testState())
	sp.SyncPlan()

	require.NotNil(t, sp.preview.Image, "a loaded plan must produce a preview")
	bounds := sp.preview.Image.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), previewWidth)
	assert.LessOrEqual(t, bounds.Dy(), previewHeight)

	assert.Contains(t, sp.label.Text, "Location: L1")
	assert.Contains(t, sp.label.Text, "Desks: 2")
}

func TestStatsPanelClearsPreviewWithoutPlan(t *testing.T) {
	test.NewApp()
	sp := NewStatsPanel(testState())
	sp.SyncPlan()
	require.NotNil(t, sp.preview.Image)

	sp.state.Plan = nil
	sp.SyncPlan()
	assert.Nil(t, sp.preview.Image)
	assert.Equal(t, "No plan loaded", sp.label.Text)
}
