package figure

import (
	"reflect"
	"testing"
)

func TestNewLegendDefaults(t *testing.T) {
	l := NewLegend(LegendOptions{})

	if !l.FrameOn() || l.FrameAlpha() != 0.8 || l.Loc() != LocBest || l.FontSize() != 10 {
		t.Errorf("defaults = frame %v alpha %v loc %q size %v", l.FrameOn(), l.FrameAlpha(), l.Loc(), l.FontSize())
	}
	if l.FaceColor() != "white" || l.EdgeColor() != "#CCCCCC" {
		t.Errorf("colours = %s %s", l.FaceColor(), l.EdgeColor())
	}
	if l.Title() != nil || l.Title().Text() != "" {
		t.Error("legend without title should have a nil title")
	}
}

func TestNewLegendLabels(t *testing.T) {
	a := NewLine(nil, nil, "alpha", Style{})
	b := NewLine(nil, nil, "beta", Style{})
	c := NewPatch("gamma", "red")

	off := false
	alpha := 0.3
	l := NewLegend(LegendOptions{
		Handles:    []Artist{a, b, c},
		Labels:     []string{"A", "B"},
		Title:      "Greek",
		FrameOn:    &off,
		FrameAlpha: &alpha,
		EdgeColor:  "red",
		FaceColor:  "#eeeeee",
		Loc:        LocLowerLeft,
		FontSize:   14,
	})

	var labels []string
	for _, txt := range l.Texts() {
		labels = append(labels, txt.Text())
		if txt.Size != 14 {
			t.Errorf("label %q size = %v, want 14", txt.Text(), txt.Size)
		}
	}
	if !reflect.DeepEqual(labels, []string{"A", "B", "gamma"}) {
		t.Errorf("labels = %v", labels)
	}
	if len(l.LegendHandles()) != 3 {
		t.Errorf("handles = %d, want 3", len(l.LegendHandles()))
	}
	if l.Title().Text() != "Greek" || l.FrameOn() || l.FrameAlpha() != 0.3 {
		t.Errorf("options not applied: title %q frame %v alpha %v", l.Title().Text(), l.FrameOn(), l.FrameAlpha())
	}
	if l.EdgeColor() != "red" || l.FaceColor() != "#eeeeee" || l.Loc() != LocLowerLeft {
		t.Errorf("options not applied: %s %s %s", l.EdgeColor(), l.FaceColor(), l.Loc())
	}
}

func TestAxesLegend(t *testing.T) {
	ax := New(0, 0).AddAxes()
	ax.Plot([]float64{0}, []float64{0}, "shown", Style{})
	ax.Plot([]float64{0}, []float64{0}, "_hidden", Style{})
	ax.Plot([]float64{0}, []float64{0}, "", Style{})
	ax.AddPatch(NewPatch("region", "blue"))

	handles, labels := ax.HandlesLabels()
	if len(handles) != 2 || !reflect.DeepEqual(labels, []string{"shown", "region"}) {
		t.Errorf("HandlesLabels() = %d handles, labels %v", len(handles), labels)
	}

	if ax.GetLegend() != nil {
		t.Fatal("axes should start without a legend")
	}
	first := ax.Legend(LegendOptions{})
	if ax.GetLegend() != first || len(first.LegendHandles()) != 2 {
		t.Error("Legend() should attach a legend of the labelled series")
	}

	second := ax.Legend(LegendOptions{Handles: handles[:1]})
	if ax.GetLegend() != second || len(second.LegendHandles()) != 1 {
		t.Error("Legend() should replace the previous legend")
	}
}
