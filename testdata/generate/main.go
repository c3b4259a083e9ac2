package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saascontratos/contratos/internal/contracts"
)

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	providers := []string{
		"Ana Souza Design ME", "João Pereira Consultoria", "Estúdio Ipê Ltda",
		"Carla Mendes Fotografia", "Rafael Lima Desenvolvimento",
	}
	clients := []string{
		"Padaria Central Ltda", "Clínica Bem-Estar", "Mercado São Jorge",
		"Escola Aprender", "Oficina do Zé", "Construtora Horizonte S.A.",
	}
	services := []struct {
		title       string
		description string
	}{
		{"Identidade visual", "Criação de logotipo, paleta de cores e manual de marca."},
		{"Site institucional", "Desenvolvimento de site responsivo com até cinco páginas."},
		{"Ensaio fotográfico", "Sessão de fotos de produtos com tratamento de 30 imagens."},
		{"Consultoria tributária", "Revisão do enquadramento tributário e plano de ação."},
		{"Sistema de agendamento", "Aplicação web para agendamento de clientes com lembretes."},
	}
	cities := []string{"Curitiba", "Recife", "São Paulo", "Belo Horizonte", "Porto Alegre"}
	terms := []string{
		"Pix à vista", "50% na assinatura e 50% na entrega",
		"Boleto em 3 parcelas mensais", "Transferência bancária em 30 dias",
	}
	statuses := []string{"rascunho", "rascunho", "enviado", "assinado"}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var inputs []contracts.Input
	for i := 0; i < 24; i++ {
		svc := services[rng.Intn(len(services))]

		// Value between R$ 300,00 and R$ 50.000,00.
		cents := 30000 + rng.Int63n(5_000_000-30000)
		value := decimal.New(cents, -2)

		// 20% without due date.
		var due string
		if rng.Float64() >= 0.2 {
			due = start.AddDate(0, 0, rng.Intn(365)).Format("2006-01-02")
		}

		inputs = append(inputs, contracts.Input{
			Title:              svc.title,
			ProviderName:       providers[rng.Intn(len(providers))],
			ClientName:         clients[rng.Intn(len(clients))],
			ServiceDescription: svc.description,
			Value:              value.StringFixed(2),
			PaymentTerms:       terms[rng.Intn(len(terms))],
			City:               cities[rng.Intn(len(cities))],
			Status:             statuses[rng.Intn(len(statuses))],
			DueDate:            due,
		})
	}

	writeJSONFile(filepath.Join(baseDir, "contracts.json"), map[string]any{"contracts": inputs})
	fmt.Printf("Generated %d contracts -> contracts.json\n", len(inputs))

	writeCSVFile(filepath.Join(baseDir, "contracts.csv"), inputs)
	fmt.Printf("Generated %d contracts -> contracts.csv\n", len(inputs))

	fmt.Println("Test data generation complete.")
}

func writeCSVFile(path string, inputs []contracts.Input) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{
		"title", "provider_name", "client_name", "service_description",
		"value", "payment_terms", "city", "status", "due_date",
	})
	for _, in := range inputs {
		w.Write([]string{
			in.Title, in.ProviderName, in.ClientName, in.ServiceDescription,
			in.Value, in.PaymentTerms, in.City, in.Status, in.DueDate,
		})
	}
}

func writeJSONFile(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic(err)
	}
}

func findTestdataDir() string {
	candidates := []string{"testdata", filepath.Join("..", "testdata"), "."}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() && filepath.Base(c) == "testdata" {
			return c
		}
	}
	if wd, err := os.Getwd(); err == nil && filepath.Base(wd) == "generate" {
		return filepath.Dir(wd)
	}
	return "testdata"
}
