package filter

import (
	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/rangectx"
)

// GetTimeRange is the Executor specialization from §4.6: walk groups built
// before the Rewrite pass, AND-fold each group's units on the schema column
// timeColID into a temporary context, OR-fold that into an accumulator, and
// accept only if the final accumulator resolves to exactly one range or
// NotNull. Grounded on filterGetTimeRange. timeColID is the schema column
// id (ColumnField.ID), the same identifier Execute's cols map is keyed on
// -- not the field-slice index Unit.Left carries internally.
func GetTimeRange(info *Info, groups []Group, timeColID int32) (rangectx.Range, bool, error) {
	acc, err := rangectx.New(coltype.Timestamp, rangectx.OptionTimestamp)
	if err != nil {
		return rangectx.Range{}, false, err
	}

	for _, g := range groups {
		tmp, err := rangectx.Get(coltype.Timestamp, rangectx.OptionTimestamp)
		if err != nil {
			return rangectx.Range{}, false, err
		}
		for _, uidx := range g.Units {
			u := info.Units[uidx]
			if info.column(u).ID != timeColID {
				rangectx.Put(tmp)
				return rangectx.Range{}, false, errf(InvalidTimeCondition,
					"group mixes column %d with the time column", info.column(u).ID)
			}
			if _, err := foldRangeUnit(info, tmp, u); err != nil {
				rangectx.Put(tmp)
				return rangectx.Range{}, false, err
			}
		}
		err = acc.SourceFrom(tmp, rangectx.OR)
		rangectx.Put(tmp)
		if err != nil {
			return rangectx.Range{}, false, err
		}
	}

	acc.Finish()
	ranges := acc.Ranges()

	switch {
	case len(ranges) == 1:
		return ranges[0], true, nil
	case acc.NotNull && len(ranges) == 0:
		min, _ := coltype.MinValue(coltype.Timestamp)
		max, _ := coltype.MaxValue(coltype.Timestamp)
		return rangectx.Range{S: min, E: max}, true, nil
	default:
		return rangectx.Range{}, false, errf(InvalidTimeCondition,
			"time predicate resolves to %d disjoint ranges, expected exactly one", len(ranges))
	}
}
