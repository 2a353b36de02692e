package menu

import "testing"

const menuCSV = `ID Item (único),Nome do Item,Descrição,Categoria,Preço 4 fatias,Preço 6 fatias,Preço 8 fatias,Preço 10 fatias,É Pizza? (sim/não),É Montável? (sim/não),Disponível (sim/não),Imagem
pz-01,Calabresa,Calabresa com cebola,Pizzas Salgadas,"25,00","32,00","40,00","48,00",sim,não,sim,https://img/calabresa.png
pz-02,Mussarela,Queijo e orégano,Pizzas Salgadas,,,30,,sim,não,sim,
bg-01,Burger da Casa,Pão e blend 160g,Burgers,,,"25,50",,não,sim,sim,
bv-01,Coca-Cola 2L,,Bebidas,,,12,,não,não,não,
,Sem ID,não deve entrar,Bebidas,,,5,,não,não,sim,
`

func TestParseMenuCSV(t *testing.T) {
	records, err := parseRecords(menuCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := buildItems(records)

	if len(items) != 4 {
		t.Fatalf("expected 4 items (no-id row skipped), got %d", len(items))
	}

	calabresa := items[0]
	if calabresa.ID != "pz-01" || !calabresa.IsPizza {
		t.Fatalf("unexpected first item: %+v", calabresa)
	}
	if calabresa.TierPrice(Tier6Slices) != 32 || calabresa.TierPrice(Tier8Slices) != 40 {
		t.Fatalf("comma decimals must parse: %+v", calabresa.Prices)
	}

	mussarela := items[1]
	if len(mussarela.Prices) != 1 || mussarela.TierPrice(Tier8Slices) != 30 {
		t.Fatalf("absent tiers must be omitted: %+v", mussarela.Prices)
	}

	burger := items[2]
	if burger.IsPizza || !burger.IsCustomizable {
		t.Fatalf("unexpected burger flags: %+v", burger)
	}
	if burger.TierPrice(TierStandard) != 25.5 {
		t.Fatalf("non-pizza price must land on the standard tier: %+v", burger.Prices)
	}

	coke := items[3]
	if coke.Available {
		t.Fatal("'não' must parse as unavailable")
	}
}

func TestParseRecordsSkipsRaggedRows(t *testing.T) {
	csvText := "ID Item (único),Nome do Item,Preço 8 fatias,É Pizza? (sim/não),Disponível (sim/não)\n" +
		"pz-01,Calabresa,40,sim,sim\n" +
		"broken,row\n" +
		"pz-02,Mussarela,30,sim,sim\n"

	records, err := parseRecords(csvText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ragged rows must be skipped, got %d records", len(records))
	}
}

func TestBuildDeliveryZones(t *testing.T) {
	csvText := "Bairros,Valor Frete\nCentro,\"5,00\"\nJardim América,7\n,3\n"
	records, err := parseRecords(csvText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zones := buildDeliveryZones(records)
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	if zones[0].Neighborhood != "Centro" || zones[0].Fee != 5 {
		t.Fatalf("unexpected zone: %+v", zones[0])
	}
}

func TestBuildIngredientsAndExtras(t *testing.T) {
	ingredientsCSV := "ID Intem,Ingredientes,Preço,Limite,Seleção Única,É Obrigatório?(sim/não)\n" +
		"01,Bacon,\"3,00\",2,não,não\n" +
		"02,Pão,0,,sim,sim\n"
	records, err := parseRecords(ingredientsCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ingredients := buildIngredients(records)
	if len(ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(ingredients))
	}
	if ingredients[0].ID != "ing-01" || ingredients[0].Price != 3 || ingredients[0].Limit != 2 {
		t.Fatalf("unexpected ingredient: %+v", ingredients[0])
	}
	if !ingredients[1].IsSingleChoice || !ingredients[1].IsRequired {
		t.Fatalf("unexpected flags: %+v", ingredients[1])
	}
	if ingredients[0].Limit == ingredients[1].Limit {
		t.Fatal("an empty limit cell must mean unlimited")
	}

	extrasCSV := "ID Intem,Adicionais,Preço,Limite Adicionais\n10,Borda Recheada,8,1\n"
	records, err = parseRecords(extrasCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	extras := buildExtras(records)
	if len(extras) != 1 || extras[0].ID != "extra-10" || extras[0].Price != 8 {
		t.Fatalf("unexpected extras: %+v", extras)
	}
}
