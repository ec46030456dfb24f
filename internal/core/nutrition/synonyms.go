package nutrition

import "nutriai/internal/core/textnorm"

// 常見口語名稱對應到參考表名稱，鍵為正規化後的名稱
var synonyms = map[string]string{
	"acucar":                   "Açúcar, cristal",
	"acucar cristal":           "Açúcar, cristal",
	"acucar refinado":          "Açúcar, refinado",
	"acucar mascavo":           "Açúcar, mascavo",
	"leite":                    "Leite, de vaca, integral, pó",
	"leite em po":              "Leite, de vaca, integral, pó",
	"leite integral":           "Leite, de vaca, integral",
	"leite desnatado":          "Leite, de vaca, desnatado, pó",
	"leite condensado":         "Leite, condensado",
	"leite de coco":            "Leite, de coco",
	"creme de leite":           "Creme de Leite",
	"oleo":                     "Óleo, de soja",
	"oleo de soja":             "Óleo, de soja",
	"azeite":                   "Azeite, de oliva, extra virgem",
	"azeite de oliva":          "Azeite, de oliva, extra virgem",
	"azeite extra virgem":      "Azeite, de oliva, extra virgem",
	"manteiga":                 "Manteiga, com sal",
	"margarina":                "Margarina, com óleo hidrogenado, com sal (65% de lipídeos)",
	"fermento":                 "Fermento em pó, químico",
	"fermento em po":           "Fermento em pó, químico",
	"bacon":                    "Toucinho, frito",
	"calabresa":                "Lingüiça, porco, frita",
	"linguica calabresa":       "Lingüiça, porco, frita",
	"peito de frango":          "Frango, peito, sem pele, cru",
	"file de frango":           "Frango, peito, sem pele, cru",
	"frango desfiado":          "Frango, peito, sem pele, cozido",
	"coxa de frango":           "Frango, coxa, com pele, crua",
	"carne moida":              "Carne, bovina, acém, moído, cru",
	"patinho":                  "Carne, bovina, patinho, sem gordura, cru",
	"contra-file":              "Carne, bovina, contra-filé, sem gordura, cru",
	"lombo":                    "Porco, lombo, cru",
	"presunto":                 "Presunto, com capa de gordura",
	"amido de milho":           "Milho, amido, cru",
	"maisena":                  "Milho, amido, cru",
	"fuba":                     "Milho, fubá, cru",
	"fuba para polvilhar":      "Milho, fubá, cru",
	"milho":                    "Milho, verde, enlatado, drenado",
	"milho verde":              "Milho, verde, enlatado, drenado",
	"molho de tomate":          "Tomate, molho industrializado",
	"extrato de tomate":        "Tomate, extrato",
	"tomate":                   "Tomate, com semente, cru",
	"requeijao":                "Queijo, requeijão, cremoso",
	"queijo mussarela":         "Queijo, mozarela",
	"mussarela":                "Queijo, mozarela",
	"queijo ralado":            "Queijo, parmesão",
	"parmesao":                 "Queijo, parmesão",
	"queijo minas":             "Queijo, minas, frescal",
	"ricota":                   "Queijo, ricota",
	"iogurte":                  "Iogurte, natural",
	"iogurte natural":          "Iogurte, natural",
	"abobrinha":                "Abobrinha, italiana, crua",
	"abobora":                  "Abóbora, moranga, crua",
	"cheiro-verde":             "Salsa, crua",
	"cheiro verde":             "Salsa, crua",
	"salsinha":                 "Salsa, crua",
	"salsa":                    "Salsa, crua",
	"cebolinha":                "Cebolinha, crua",
	"manjericao":               "Manjericão, cru",
	"ovo":                      "Ovo, de galinha, inteiro, cru",
	"ovos":                     "Ovo, de galinha, inteiro, cru",
	"gema":                     "Ovo, de galinha, gema, cozida/10minutos",
	"clara":                    "Ovo, de galinha, clara, cozida/10minutos",
	"alho":                     "Alho, cru",
	"cebola":                   "Cebola, crua",
	"batata":                   "Batata, inglesa, crua",
	"batata inglesa":           "Batata, inglesa, crua",
	"batata-doce":              "Batata, doce, crua",
	"batata doce":              "Batata, doce, crua",
	"batata palha":             "Batata, frita, tipo chips, industrializada",
	"cenoura":                  "Cenoura, crua",
	"pimentao":                 "Pimentão, verde, cru",
	"pimentao verde":           "Pimentão, verde, cru",
	"pimentao vermelho":        "Pimentão, vermelho, cru",
	"pimentao amarelo":         "Pimentão, amarelo, cru",
	"brocolis":                 "Brócolis, cru",
	"couve":                    "Couve, manteiga, crua",
	"couve-flor":               "Couve-flor, crua",
	"espinafre":                "Espinafre, Nova Zelândia, cru",
	"alface":                   "Alface, crespa, crua",
	"mandioca":                 "Mandioca, crua",
	"aipim":                    "Mandioca, crua",
	"coco ralado":              "Coco, cru",
	"coco em flocos":           "Coco, cru",
	"amendoim":                 "Amendoim, torrado, salgado",
	"amendoim torrado":         "Amendoim, torrado, salgado",
	"amendoim torrado e moido": "Amendoim, torrado, salgado",
	"arroz":                    "Arroz, tipo 1, cozido",
	"arroz integral":           "Arroz, integral, cozido",
	"farinha de trigo":         "Farinha, de trigo",
	"farinha":                  "Farinha, de trigo",
	"farinha de mandioca":      "Farinha, de mandioca, torrada",
	"aveia":                    "Aveia, flocos, crua",
	"macarrao":                 "Macarrão, trigo, cru",
	"pao frances":              "Pão, trigo, francês",
	"pao de forma":             "Pão, trigo, forma, integral",
	"polvilho doce":            "Polvilho, doce",
	"canela":                   "Canela, pó",
	"canela em po":             "Canela, pó",
	"ervilha":                  "Ervilha, enlatada, drenada",
	"feijao":                   "Feijão, carioca, cru",
	"feijao preto":             "Feijão, preto, cru",
	"grao-de-bico":             "Grão-de-bico, cru",
	"lentilha":                 "Lentilha, crua",
	"goiabada":                 "Goiaba, doce, cascão",
	"banana":                   "Banana, prata, crua",
	"limao":                    "Limão, tahiti, cru",
	"laranja":                  "Laranja, pêra, crua",
	"maca":                     "Maçã, Fuji, com casca, crua",
	"morango":                  "Morango, cru",
	"chocolate":                "Chocolate, ao leite",
	"chocolate meio amargo":    "Chocolate, meio amargo",
	"chocolate em po":          "Achocolatado, pó",
	"achocolatado":             "Achocolatado, pó",
	"mel":                      "Mel, de abelha",
	"maionese":                 "Maionese, tradicional com ovos",
	"atum":                     "Atum, conserva em óleo",
	"sardinha":                 "Sardinha, conserva em óleo",
	"camarao":                  "Camarão, Rio Grande, grande, cru",
	"bacalhau":                 "Bacalhau, salgado, cru",
	"castanha-do-para":         "Castanha-do-Brasil, crua",
	"nozes":                    "Noz, crua",
	"gergelim":                 "Gergelim, semente",
	"cafe":                     "Café, pó, torrado",
}

// synonymTarget 回傳同義詞對應的參考表鍵；先試原名再試單數形式
func synonymTarget(key string) (string, bool) {
	if target, ok := synonyms[key]; ok {
		return textnorm.Normalize(target), true
	}
	if target, ok := synonyms[textnorm.SingularizePhrase(key)]; ok {
		return textnorm.Normalize(target), true
	}
	return "", false
}
