package timeline

// Label is the fine-grained per-segment category.
type Label string

const (
	LabelMusic   Label = "Music"
	LabelSilence Label = "Silence"
	LabelDJ      Label = "DJ"
	LabelGuest   Label = "Guest"
	LabelAD      Label = "AD"
	LabelProgram Label = "Program"
)

// LabeledSegment pairs a segment with its predicted label.
type LabeledSegment struct {
	Segment
	Label Label `json:"predicted_label"`
}
