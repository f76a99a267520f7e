package rating

import (
	s "github.com/cory-johannsen/statforge/internal/game/statistic"
)

// table maps a level to one value per rating column. Columns are declared
// strongest first.
type table struct {
	ratings []s.Rating
	rows    map[s.Level][]int
}

// damageTable is the strike-damage analogue of table; cells are dice expressions.
type damageTable struct {
	ratings []s.Rating
	rows    map[s.Level][]string
}

// Hit points use the midpoint of each published range, rounded half up.
var hitPointTable = table{
	ratings: []s.Rating{s.High, s.Moderate, s.Low},
	rows: map[s.Level][]int{
		-1: {9, 8, 6},
		0:  {19, 15, 12},
		1:  {25, 20, 15},
		2:  {38, 30, 23},
		3:  {56, 45, 34},
		4:  {75, 60, 45},
		5:  {94, 75, 56},
		6:  {119, 95, 71},
		7:  {144, 115, 86},
		8:  {169, 135, 101},
		9:  {194, 155, 116},
		10: {219, 175, 131},
		11: {244, 195, 146},
		12: {269, 215, 161},
		13: {294, 235, 176},
		14: {319, 255, 191},
		15: {344, 275, 206},
		16: {369, 295, 221},
		17: {394, 315, 236},
		18: {419, 335, 251},
		19: {444, 355, 266},
		20: {469, 375, 281},
		21: {500, 400, 300},
		22: {538, 430, 323},
		23: {575, 460, 345},
		24: {625, 500, 375},
	},
}

// Ability modifiers. Terrible sits two below low; abysmal is the flat -5 floor.
var abilityTable = table{
	ratings: []s.Rating{s.Extreme, s.High, s.Moderate, s.Low, s.Terrible, s.Abysmal},
	rows: map[s.Level][]int{
		-1: {4, 3, 2, 0, -2, -5},
		0:  {4, 3, 2, 0, -2, -5},
		1:  {5, 4, 3, 1, -1, -5},
		2:  {5, 4, 3, 1, -1, -5},
		3:  {5, 4, 3, 1, -1, -5},
		4:  {6, 5, 3, 2, 0, -5},
		5:  {6, 5, 4, 2, 0, -5},
		6:  {7, 5, 4, 2, 0, -5},
		7:  {7, 6, 4, 2, 0, -5},
		8:  {7, 6, 4, 3, 1, -5},
		9:  {7, 6, 4, 3, 1, -5},
		10: {8, 7, 5, 3, 1, -5},
		11: {8, 7, 5, 3, 1, -5},
		12: {8, 7, 5, 4, 2, -5},
		13: {9, 8, 5, 4, 2, -5},
		14: {9, 8, 5, 4, 2, -5},
		15: {9, 8, 6, 4, 2, -5},
		16: {10, 9, 6, 5, 3, -5},
		17: {10, 9, 6, 5, 3, -5},
		18: {10, 9, 6, 5, 3, -5},
		19: {11, 10, 6, 5, 3, -5},
		20: {11, 10, 7, 6, 4, -5},
		21: {11, 10, 7, 6, 4, -5},
		22: {11, 10, 8, 6, 4, -5},
		23: {11, 10, 8, 6, 4, -5},
		24: {13, 12, 9, 7, 5, -5},
	},
}

// Perception and all three saves share this progression.
var perceptionTable = table{
	ratings: []s.Rating{s.Extreme, s.High, s.Moderate, s.Low, s.Terrible},
	rows: map[s.Level][]int{
		-1: {9, 8, 5, 2, 0},
		0:  {10, 9, 6, 3, 1},
		1:  {11, 10, 7, 4, 2},
		2:  {12, 11, 8, 5, 3},
		3:  {14, 12, 9, 6, 4},
		4:  {15, 14, 11, 8, 6},
		5:  {17, 15, 12, 9, 7},
		6:  {18, 17, 14, 11, 8},
		7:  {20, 18, 15, 12, 10},
		8:  {21, 19, 16, 13, 11},
		9:  {23, 21, 18, 15, 12},
		10: {24, 22, 19, 16, 14},
		11: {26, 24, 21, 18, 15},
		12: {27, 25, 22, 19, 16},
		13: {29, 26, 23, 20, 18},
		14: {30, 28, 25, 22, 19},
		15: {32, 29, 26, 23, 20},
		16: {33, 30, 28, 25, 22},
		17: {35, 32, 29, 26, 23},
		18: {36, 33, 30, 27, 24},
		19: {38, 35, 32, 29, 26},
		20: {39, 36, 33, 30, 27},
		21: {41, 38, 35, 32, 28},
		22: {43, 39, 36, 33, 30},
		23: {44, 40, 37, 34, 31},
		24: {46, 42, 38, 36, 32},
	},
}

var armorClassTable = table{
	ratings: []s.Rating{s.Extreme, s.High, s.Moderate, s.Low},
	rows: map[s.Level][]int{
		-1: {18, 15, 14, 12},
		0:  {19, 16, 15, 13},
		1:  {19, 16, 15, 13},
		2:  {21, 18, 17, 15},
		3:  {22, 19, 18, 16},
		4:  {24, 21, 20, 18},
		5:  {25, 22, 21, 19},
		6:  {27, 24, 23, 21},
		7:  {28, 25, 24, 22},
		8:  {30, 27, 26, 24},
		9:  {31, 28, 27, 25},
		10: {33, 30, 29, 27},
		11: {34, 31, 30, 28},
		12: {36, 33, 32, 30},
		13: {37, 34, 33, 31},
		14: {39, 36, 35, 33},
		15: {40, 37, 36, 34},
		16: {42, 39, 38, 36},
		17: {43, 40, 39, 37},
		18: {45, 42, 41, 39},
		19: {46, 43, 42, 40},
		20: {48, 45, 44, 42},
		21: {49, 46, 45, 43},
		22: {51, 48, 47, 45},
		23: {52, 49, 48, 46},
		24: {54, 51, 50, 48},
	},
}

// Skill low and terrible are the top and bottom of the published low range.
var skillTable = table{
	ratings: []s.Rating{s.Extreme, s.High, s.Moderate, s.Low, s.Terrible},
	rows: map[s.Level][]int{
		-1: {8, 5, 4, 2, 1},
		0:  {9, 6, 5, 3, 2},
		1:  {10, 7, 6, 4, 3},
		2:  {11, 8, 7, 5, 4},
		3:  {13, 10, 9, 7, 5},
		4:  {15, 12, 10, 8, 7},
		5:  {16, 13, 12, 10, 8},
		6:  {18, 15, 13, 11, 9},
		7:  {20, 17, 15, 13, 11},
		8:  {21, 18, 16, 14, 12},
		9:  {23, 20, 18, 16, 13},
		10: {25, 22, 19, 17, 15},
		11: {26, 23, 21, 19, 16},
		12: {28, 25, 22, 20, 17},
		13: {30, 27, 24, 22, 19},
		14: {31, 28, 25, 23, 20},
		15: {33, 30, 27, 25, 21},
		16: {35, 32, 28, 26, 23},
		17: {36, 33, 30, 28, 24},
		18: {38, 35, 31, 29, 25},
		19: {40, 37, 33, 31, 27},
		20: {41, 38, 34, 32, 28},
		21: {43, 40, 36, 34, 29},
		22: {45, 42, 37, 35, 31},
		23: {46, 43, 38, 36, 32},
		24: {48, 45, 40, 38, 33},
	},
}

var strikeBonusTable = table{
	ratings: []s.Rating{s.Extreme, s.High, s.Moderate, s.Low},
	rows: map[s.Level][]int{
		-1: {10, 8, 6, 4},
		0:  {10, 8, 6, 4},
		1:  {11, 9, 7, 5},
		2:  {13, 11, 9, 7},
		3:  {14, 12, 10, 8},
		4:  {16, 14, 12, 9},
		5:  {17, 15, 13, 11},
		6:  {19, 17, 15, 12},
		7:  {20, 18, 16, 13},
		8:  {22, 20, 18, 15},
		9:  {23, 21, 19, 16},
		10: {25, 23, 21, 17},
		11: {27, 24, 22, 19},
		12: {28, 26, 24, 20},
		13: {29, 27, 25, 21},
		14: {31, 29, 27, 23},
		15: {32, 30, 28, 24},
		16: {34, 32, 30, 25},
		17: {35, 33, 31, 27},
		18: {37, 35, 33, 28},
		19: {38, 36, 34, 29},
		20: {40, 38, 36, 31},
		21: {41, 39, 37, 32},
		22: {43, 41, 39, 33},
		23: {44, 42, 40, 35},
		24: {46, 44, 42, 36},
	},
}

var strikeDamageTable = damageTable{
	ratings: []s.Rating{s.Extreme, s.High, s.Moderate, s.Low},
	rows: map[s.Level][]string{
		-1: {"1d6+1", "1d4+1", "1d4", "1d4"},
		0:  {"1d6+3", "1d6+2", "1d4+2", "1d4+1"},
		1:  {"1d8+4", "1d6+3", "1d6+2", "1d4+2"},
		2:  {"1d12+4", "1d10+4", "1d8+4", "1d6+3"},
		3:  {"1d12+8", "1d10+6", "1d8+6", "1d6+5"},
		4:  {"2d10+7", "2d8+5", "2d6+5", "2d4+4"},
		5:  {"2d12+7", "2d8+7", "2d6+6", "2d4+6"},
		6:  {"2d12+10", "2d8+9", "2d6+8", "2d4+7"},
		7:  {"2d12+12", "2d10+9", "2d8+8", "2d6+6"},
		8:  {"2d12+15", "2d10+11", "2d8+9", "2d6+8"},
		9:  {"2d12+17", "2d10+13", "2d8+11", "2d6+9"},
		10: {"2d12+20", "2d12+13", "2d10+11", "2d6+10"},
		11: {"2d12+22", "2d12+15", "2d10+12", "2d8+10"},
		12: {"3d12+19", "3d10+14", "3d8+12", "3d6+10"},
		13: {"3d12+21", "3d10+16", "3d8+14", "3d6+11"},
		14: {"3d12+24", "3d10+18", "3d8+15", "3d6+13"},
		15: {"3d12+26", "3d12+17", "3d10+14", "3d6+14"},
		16: {"3d12+29", "3d12+18", "3d10+15", "3d6+15"},
		17: {"3d12+31", "3d12+19", "3d10+16", "3d6+16"},
		18: {"3d12+34", "3d12+20", "3d10+17", "3d6+17"},
		19: {"4d12+29", "4d10+20", "4d8+17", "4d6+14"},
		20: {"4d12+32", "4d10+22", "4d8+19", "4d6+15"},
		21: {"4d12+34", "4d10+24", "4d8+20", "4d6+17"},
		22: {"4d12+37", "4d10+26", "4d8+22", "4d6+18"},
		23: {"4d12+39", "4d12+24", "4d10+20", "4d6+19"},
		24: {"4d12+42", "4d12+26", "4d10+22", "4d6+21"},
	},
}

// Spellcasting values are spell attack bonuses; the DC is the bonus plus 8.
var spellcastingTable = table{
	ratings: []s.Rating{s.Extreme, s.High, s.Moderate},
	rows: map[s.Level][]int{
		-1: {11, 8, 5},
		0:  {11, 8, 5},
		1:  {12, 9, 6},
		2:  {14, 10, 7},
		3:  {15, 12, 9},
		4:  {17, 13, 10},
		5:  {18, 14, 11},
		6:  {19, 16, 13},
		7:  {21, 17, 14},
		8:  {22, 18, 15},
		9:  {24, 20, 17},
		10: {25, 21, 18},
		11: {26, 22, 19},
		12: {28, 24, 21},
		13: {29, 25, 22},
		14: {31, 26, 23},
		15: {32, 28, 25},
		16: {33, 29, 26},
		17: {35, 30, 27},
		18: {36, 32, 29},
		19: {38, 33, 30},
		20: {39, 34, 31},
		21: {40, 36, 33},
		22: {42, 37, 34},
		23: {43, 38, 35},
		24: {44, 40, 37},
	},
}

// numericTables binds each numeric statistic to its progression. Saves are
// deliberately bound to the perception table.
var numericTables = func() map[s.ID]*table {
	m := map[s.ID]*table{
		s.HitPoints:    &hitPointTable,
		s.Perception:   &perceptionTable,
		s.Fortitude:    &perceptionTable,
		s.Reflex:       &perceptionTable,
		s.Will:         &perceptionTable,
		s.ArmorClass:   &armorClassTable,
		s.StrikeBonus:  &strikeBonusTable,
		s.Spellcasting: &spellcastingTable,
	}
	for _, a := range s.Abilities {
		m[a] = &abilityTable
	}
	for _, sk := range s.Skills {
		m[sk] = &skillTable
	}
	return m
}()
