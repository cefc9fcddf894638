package timeline

// BlockType is the coarse category of a program block.
type BlockType string

const (
	BlockMusic BlockType = "MUSIC"
	BlockDJ    BlockType = "DJ"
	BlockGuest BlockType = "GUEST"
	BlockAD    BlockType = "AD"
)

// Block is a run of consecutive segments sharing a block type.
//
// Segments lists the indices of the member segments in the input sequence.
// Silence segments separate runs and never appear in any block.
type Block struct {
	Type         BlockType `json:"block_type"`
	Start        float64   `json:"start"`
	End          float64   `json:"end"`
	Duration     float64   `json:"duration"`
	SegmentCount int       `json:"segments"`
	Speakers     []string  `json:"speakers"`
	Text         string    `json:"text"`
	Segments     []int     `json:"-"`
}
