package engine

import "sort"

// DefaultTopN is the number of recommendations returned when no limit is set.
const DefaultTopN = 5

type candidate struct {
	id    int
	score int
}

// Predict ranks the targets associated with inputs. Scores are summed across
// all inputs, inputs themselves are never returned, and ties are broken by
// ascending product ID. Unknown inputs contribute nothing. The result holds
// at most topN IDs and is empty, not nil, when nothing qualifies.
func Predict(table AssociationTable, inputs []int, topN int) ([]int, error) {
	if len(table) == 0 {
		return nil, ErrNotTrained
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyInput
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	given := make(map[int]struct{}, len(inputs))
	for _, id := range inputs {
		given[id] = struct{}{}
	}

	scores := make(map[int]int)
	for id := range given {
		for target, count := range table[id] {
			if _, isInput := given[target]; isInput {
				continue
			}
			scores[target] += count
		}
	}

	candidates := make([]candidate, 0, len(scores))
	for id, score := range scores {
		candidates = append(candidates, candidate{id: id, score: score})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	result := make([]int, len(candidates))
	for i, c := range candidates {
		result[i] = c.id
	}
	return result, nil
}
