package spellcasting

import "github.com/cory-johannsen/statforge/internal/game/statistic"

// cantripSlots is the flat cantrip count for both slot progressions.
const cantripSlots = 5

// progression maps a creature level to slot counts for spell ranks 1 through 10.
type progression map[statistic.Level][10]int

// preparedProgression caps at three slots per rank, plus a single 10th-rank slot from level 19.
var preparedProgression = progression{
	1:  {2, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	2:  {3, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	3:  {3, 2, 0, 0, 0, 0, 0, 0, 0, 0},
	4:  {3, 3, 0, 0, 0, 0, 0, 0, 0, 0},
	5:  {3, 3, 2, 0, 0, 0, 0, 0, 0, 0},
	6:  {3, 3, 3, 0, 0, 0, 0, 0, 0, 0},
	7:  {3, 3, 3, 2, 0, 0, 0, 0, 0, 0},
	8:  {3, 3, 3, 3, 0, 0, 0, 0, 0, 0},
	9:  {3, 3, 3, 3, 2, 0, 0, 0, 0, 0},
	10: {3, 3, 3, 3, 3, 0, 0, 0, 0, 0},
	11: {3, 3, 3, 3, 3, 2, 0, 0, 0, 0},
	12: {3, 3, 3, 3, 3, 3, 0, 0, 0, 0},
	13: {3, 3, 3, 3, 3, 3, 2, 0, 0, 0},
	14: {3, 3, 3, 3, 3, 3, 3, 0, 0, 0},
	15: {3, 3, 3, 3, 3, 3, 3, 2, 0, 0},
	16: {3, 3, 3, 3, 3, 3, 3, 3, 0, 0},
	17: {3, 3, 3, 3, 3, 3, 3, 3, 2, 0},
	18: {3, 3, 3, 3, 3, 3, 3, 3, 3, 0},
	19: {3, 3, 3, 3, 3, 3, 3, 3, 3, 1},
	20: {3, 3, 3, 3, 3, 3, 3, 3, 3, 1},
	21: {3, 3, 3, 3, 3, 3, 3, 3, 3, 1},
	22: {3, 3, 3, 3, 3, 3, 3, 3, 3, 1},
	23: {3, 3, 3, 3, 3, 3, 3, 3, 3, 1},
	24: {3, 3, 3, 3, 3, 3, 3, 3, 3, 1},
}

// spontaneousProgression caps at four slots per rank, plus a single 10th-rank slot from level 19.
var spontaneousProgression = progression{
	1:  {3, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	2:  {4, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	3:  {4, 3, 0, 0, 0, 0, 0, 0, 0, 0},
	4:  {4, 4, 0, 0, 0, 0, 0, 0, 0, 0},
	5:  {4, 4, 3, 0, 0, 0, 0, 0, 0, 0},
	6:  {4, 4, 4, 0, 0, 0, 0, 0, 0, 0},
	7:  {4, 4, 4, 3, 0, 0, 0, 0, 0, 0},
	8:  {4, 4, 4, 4, 0, 0, 0, 0, 0, 0},
	9:  {4, 4, 4, 4, 3, 0, 0, 0, 0, 0},
	10: {4, 4, 4, 4, 4, 0, 0, 0, 0, 0},
	11: {4, 4, 4, 4, 4, 3, 0, 0, 0, 0},
	12: {4, 4, 4, 4, 4, 4, 0, 0, 0, 0},
	13: {4, 4, 4, 4, 4, 4, 3, 0, 0, 0},
	14: {4, 4, 4, 4, 4, 4, 4, 0, 0, 0},
	15: {4, 4, 4, 4, 4, 4, 4, 3, 0, 0},
	16: {4, 4, 4, 4, 4, 4, 4, 4, 0, 0},
	17: {4, 4, 4, 4, 4, 4, 4, 4, 3, 0},
	18: {4, 4, 4, 4, 4, 4, 4, 4, 4, 0},
	19: {4, 4, 4, 4, 4, 4, 4, 4, 4, 1},
	20: {4, 4, 4, 4, 4, 4, 4, 4, 4, 1},
	21: {4, 4, 4, 4, 4, 4, 4, 4, 4, 1},
	22: {4, 4, 4, 4, 4, 4, 4, 4, 4, 1},
	23: {4, 4, 4, 4, 4, 4, 4, 4, 4, 1},
	24: {4, 4, 4, 4, 4, 4, 4, 4, 4, 1},
}
