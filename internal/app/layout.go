package app

import (
	"github.com/chmouel/lazystatus/internal/app/state"
)

const (
	minListPaneWidth    = 32
	minPreviewPaneWidth = 32
)

// layoutDims holds computed layout dimensions for the UI.
type layoutDims struct {
	width        int
	height       int
	headerHeight int
	footerHeight int
	filterHeight int
	bodyHeight   int
	gapX         int

	listWidth          int
	previewWidth       int
	listInnerWidth     int
	previewInnerWidth  int
	listInnerHeight    int
	previewInnerHeight int
}

// setWindowSize updates the window dimensions and applies the layout.
func (m *Model) setWindowSize(width, height int) {
	m.view.WindowWidth = width
	m.view.WindowHeight = height
	m.applyLayout(m.computeLayout())
}

// computeLayout calculates the layout dimensions based on window size
// and UI state.
func (m *Model) computeLayout() layoutDims {
	width := m.view.WindowWidth
	height := m.view.WindowHeight
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}

	headerHeight := 1
	footerHeight := 1
	filterHeight := 0
	if m.view.ShowingFilter {
		filterHeight = 1
	}
	gapX := 1

	bodyHeight := max(height-headerHeight-footerHeight-filterHeight, 8)

	// Border and padding sizes are the same whether or not the pane is
	// focused, so the unfocused frame stands in for both.
	paneFrameX := m.paneFrame(false).GetHorizontalFrameSize()
	paneFrameY := m.paneFrame(false).GetVerticalFrameSize()

	// Zoomed pane gets the full body area.
	if m.view.ZoomedPane >= 0 {
		fullInnerWidth := max(1, width-paneFrameX)
		fullInnerHeight := max(1, bodyHeight-paneFrameY)
		return layoutDims{
			width:              width,
			height:             height,
			headerHeight:       headerHeight,
			footerHeight:       footerHeight,
			filterHeight:       filterHeight,
			bodyHeight:         bodyHeight,
			gapX:               0,
			listWidth:          width,
			previewWidth:       width,
			listInnerWidth:     fullInnerWidth,
			previewInnerWidth:  fullInnerWidth,
			listInnerHeight:    fullInnerHeight,
			previewInnerHeight: fullInnerHeight,
		}
	}

	// The preview gets the larger share; focusing it widens it further.
	listRatio := 0.45
	if m.view.FocusedPane == state.PanePreview {
		listRatio = 0.30
	}

	listWidth := int(float64(width-gapX) * listRatio)
	previewWidth := width - listWidth - gapX
	if listWidth < minListPaneWidth {
		listWidth = minListPaneWidth
		previewWidth = width - listWidth - gapX
	}
	if previewWidth < minPreviewPaneWidth {
		previewWidth = minPreviewPaneWidth
		listWidth = width - previewWidth - gapX
	}
	if listWidth < minListPaneWidth {
		listWidth = minListPaneWidth
	}
	if previewWidth < minPreviewPaneWidth {
		previewWidth = minPreviewPaneWidth
	}
	if listWidth+previewWidth+gapX > width {
		previewWidth = width - listWidth - gapX
	}
	if previewWidth < 0 {
		previewWidth = 0
	}

	return layoutDims{
		width:              width,
		height:             height,
		headerHeight:       headerHeight,
		footerHeight:       footerHeight,
		filterHeight:       filterHeight,
		bodyHeight:         bodyHeight,
		gapX:               gapX,
		listWidth:          listWidth,
		previewWidth:       previewWidth,
		listInnerWidth:     max(1, listWidth-paneFrameX),
		previewInnerWidth:  max(1, previewWidth-paneFrameX),
		listInnerHeight:    max(1, bodyHeight-paneFrameY),
		previewInnerHeight: max(1, bodyHeight-paneFrameY),
	}
}

// applyLayout applies the computed layout to the stateful components.
// The preview viewport is sized where it renders because the info box
// height varies with the repository state.
func (m *Model) applyLayout(layout layoutDims) {
	m.ui.filterInput.Width = max(20, layout.width-18)
}
