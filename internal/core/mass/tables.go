package mass

import "nutriai/internal/core/unit"

type curatedKey struct {
	name string
	unit unit.Canonical
}

// 已知食材的每單位克數，名稱為正規化後的單數形式
var curatedWeights = map[curatedKey]float64{
	{"ovo", unit.Unit}:                             50,
	{"gema", unit.Unit}:                            20,
	{"clara", unit.Unit}:                           30,
	{"cebola", unit.Unit}:                          120,
	{"limao", unit.Unit}:                           80,
	{"tomate", unit.Unit}:                          90,
	{"banana", unit.Unit}:                          100,
	{"batata", unit.Unit}:                          150,
	{"cenoura", unit.Unit}:                         100,
	{"pimentao", unit.Unit}:                        150,
	{"abobrinha", unit.Unit}:                       200,
	{"laranja", unit.Unit}:                         180,
	{"maca", unit.Unit}:                            130,
	{"alho", unit.Clove}:                           5,
	{"alho", unit.Head}:                            40,
	{"alho", unit.Unit}:                            5,
	{"acucar", unit.Cup}:                           160,
	{"acucar", unit.Tablespoon}:                    12,
	{"acucar mascavo", unit.Cup}:                   180,
	{"farinha de trigo", unit.Cup}:                 120,
	{"farinha de trigo", unit.Tablespoon}:          7.5,
	{"arroz", unit.Cup}:                            185,
	{"arroz integral", unit.Cup}:                   195,
	{"feijao", unit.Cup}:                           180,
	{"lentilha", unit.Cup}:                         190,
	{"grao-de-bico", unit.Cup}:                     160,
	{"aveia", unit.Cup}:                            80,
	{"manteiga", unit.Tablespoon}:                  15,
	{"manteiga", unit.Tablet}:                      200,
	{"margarina", unit.Tablespoon}:                 15,
	{"queijo ralado", unit.Tablespoon}:             6,
	{"leite", unit.Cup}:                            240,
	{"oleo", unit.Tablespoon}:                      13,
	{"azeite", unit.Tablespoon}:                    13,
	{"fermento em po", unit.Tablespoon}:            10,
	{"chocolate em po", unit.Tablespoon}:           6,
	{"leite condensado", unit.Can}:                 395,
	{"creme de leite", unit.Can}:                   200,
	{"creme de leite", unit.Package}:               200,
	{"milho", unit.Can}:                            170,
	{"ervilha", unit.Can}:                          170,
	{"extrato de tomate", unit.Can}:                340,
	{"molho de tomate", unit.Package}:              340,
	{"queijo", unit.Slice}:                         20,
	{"presunto", unit.Slice}:                       15,
	{"pao de forma", unit.Slice}:                   25,
	{"bacon", unit.Slice}:                          15,
	{"proteina de soja texturizada", unit.Cup}:     60,
	{"salsa", unit.Bundle}:                         50,
	{"cheiro-verde", unit.Bundle}:                  50,
	{"couve", unit.Bundle}:                         200,
	{"couve", unit.Leaf}:                           20,
}

// 只依單位的通用換算
var genericWeights = map[unit.Canonical]float64{
	unit.Cup:          240,
	unit.CupAmerican:  200,
	unit.Tablespoon:   15,
	unit.Dessertspoon: 10,
	unit.Teaspoon:     5,
	unit.Coffeespoon:  2.5,
	unit.Unit:         100,
	unit.Clove:        5,
	unit.Pinch:        1,
	unit.Slice:        20,
	unit.Can:          250,
	unit.Package:      200,
	unit.Tablet:       25,
	unit.Piece:        50,
	unit.Head:         200,
	unit.Bunch:        100,
	unit.Bundle:       50,
	unit.Cube:         20,
	unit.Leaf:         2,
	unit.Drop:         0.05,
	unit.Portion:      100,
	unit.Pot:          200,
}

// 外部估算不可用時的保守預設值
var fallbackWeights = map[unit.Canonical]float64{
	unit.Cup:          200,
	unit.CupAmerican:  180,
	unit.Tablespoon:   12,
	unit.Dessertspoon: 8,
	unit.Teaspoon:     4,
	unit.Coffeespoon:  2,
	unit.Unit:         80,
	unit.Clove:        4,
	unit.Pinch:        0.5,
	unit.Slice:        15,
	unit.Can:          250,
	unit.Jar:          250,
	unit.Package:      200,
	unit.Tablet:       20,
	unit.Piece:        40,
	unit.Strip:        15,
	unit.Head:         150,
	unit.Bunch:        80,
	unit.Bundle:       40,
	unit.Cube:         10,
	unit.Leaf:         1,
	unit.Drop:         0.05,
	unit.Portion:      100,
	unit.Serving:      100,
	unit.Pot:          150,
}
