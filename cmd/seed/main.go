// seed importa leads de restaurantes desde un CSV al almacén configurado (DB_DRIVER).
//
// Uso: go run ./cmd/seed --file restaurantes.csv [--charset iso-8859-1] [--dry-run]
//
// Columnas (encabezado obligatorio, orden libre): name, address, phone, email, status, call_frequency.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/infrastructure/store"
	"github.com/jhoicas/leads-crm-api/pkg/config"
	"github.com/jhoicas/leads-crm-api/pkg/logger"
	"github.com/jhoicas/leads-crm-api/pkg/textnorm"
)

var (
	csvPath string
	charset string
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Importa leads de restaurantes desde un CSV",
	Long: `Importa leads desde un CSV con encabezado.

Columnas reconocidas: name, address, phone, email, status, call_frequency.
Cada fila pasa por las mismas validaciones que POST /api/leads. Con --dry-run se
validan formato y campos sin abrir el almacén; la existencia de kam_id no se comprueba.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVarP(&csvPath, "file", "f", "restaurantes.csv", "ruta del CSV")
	rootCmd.Flags().StringVar(&charset, "charset", "iso-8859-1", "codificación del archivo (iso-8859-1, windows-1252, utf-8)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "solo valida el archivo, no escribe")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, rowErrs, err := parseLeads(textnorm.DecodeReader(f, charset))
	if err != nil {
		return err
	}
	for _, re := range rowErrs {
		log.Warn().Int("fila", re.Row).Str("error", re.Message).Msg("fila descartada")
	}
	if dryRun {
		valid, rejected := checkRows(cmd.Context(), crm.NewLeadUseCase(nil, nil, nil, nil, nil), rows)
		for _, re := range rejected {
			log.Warn().Int("fila", re.Row).Str("error", re.Message).Msg("fila inválida")
		}
		log.Info().
			Int("validas", len(valid)).
			Int("invalidas", len(rejected)).
			Int("descartadas", len(rowErrs)).
			Msg("dry-run: sin escrituras")
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	uc := crm.NewLeadUseCase(st.Leads, st.Contacts, st.Interactions, st.Users, st.Tx)
	created := 0
	for _, r := range rows {
		if _, err := uc.Create(ctx, r.Request); err != nil {
			log.Warn().Int("fila", r.Row).Err(err).Msg("lead no creado")
			continue
		}
		created++
	}
	log.Info().
		Int("creados", created).
		Int("fallidos", len(rows)-created).
		Int("descartados", len(rowErrs)).
		Msg("importación finalizada")
	return nil
}
