package discovery

import (
	"github.com/battyone/beyond-correlation/domain/frame"
	"github.com/battyone/beyond-correlation/domain/relate"
)

// PreparePair extracts the two-column sub-table for an ordered
// (feature, target) pair and removes every row with a missing value in either
// column. Removal is pairwise: other columns never influence which rows
// survive. The source frame is not mutated.
//
// When the pair has zero rows before removal the drop fraction is reported
// as 0 rather than NaN.
func PreparePair(f *frame.Frame, feature, target string) (*frame.Frame, relate.NaNInfo, error) {
	pair, err := f.Select(feature, target)
	if err != nil {
		return nil, relate.NaNInfo{}, err
	}

	before := pair.RowCount()
	clean, dropped := pair.DropMissing()

	info := relate.NaNInfo{
		Feature:  feature,
		Target:   target,
		NDropped: dropped,
	}
	if before > 0 {
		info.PctDropped = float64(dropped) / float64(before)
	}
	return clean, info, nil
}
