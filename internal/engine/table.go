package engine

import "sort"

// AssociationTable maps an input product to the targets it was paired with
// and how many times each pairing was observed.
type AssociationTable map[int]map[int]int

// Build aggregates pairs into a new table. Duplicate pairs raise the count.
func Build(pairs []Pair) AssociationTable {
	table := make(AssociationTable)
	for _, p := range pairs {
		row, ok := table[p.Input]
		if !ok {
			row = make(map[int]int)
			table[p.Input] = row
		}
		row[p.Target]++
	}
	return table
}

// Len returns the number of distinct input products.
func (t AssociationTable) Len() int {
	return len(t)
}

// Products returns every product seen as input or target, ascending.
func (t AssociationTable) Products() []int {
	seen := make(map[int]struct{}, len(t))
	for input, row := range t {
		seen[input] = struct{}{}
		for target := range row {
			seen[target] = struct{}{}
		}
	}

	products := make([]int, 0, len(seen))
	for id := range seen {
		products = append(products, id)
	}
	sort.Ints(products)
	return products
}
