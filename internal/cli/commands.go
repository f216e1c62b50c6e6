// Package cli implementa stockctl, la CLI de operación (migración, datos de ejemplo y tokens).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/storage"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/jwt"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// Producto de ejemplo del script de inicialización histórico.
const sampleBarcode = "7891234567890"

// NewRootCommand construye el árbol de comandos. La salida normal va a out.
func NewRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()
	var cfg *config.Config
	var log *logger.Logger

	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Operación del servicio de estoque",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if file := v.GetString("config"); file != "" {
				v.SetConfigFile(file)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("leer %s: %w", file, err)
				}
			}
			v.AutomaticEnv()
			v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

			var err error
			cfg, err = config.FromViper(v)
			if err != nil {
				return err
			}
			log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.App.LogLevel)
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().String("config", "", "archivo de configuración (.env, yaml, ...)")
	root.PersistentFlags().String("storage", "", "backend: memory | postgres | redis (STORAGE_DRIVER)")
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("STORAGE_DRIVER", root.PersistentFlags().Lookup("storage"))

	root.AddCommand(
		migrateCommand(&cfg, &log),
		seedCommand(&cfg, &log),
		tokenCommand(&cfg),
	)
	return root
}

func migrateCommand(cfg **config.Config, log **logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema de PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, (*cfg).DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()
			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			(*log).Info().Msg("esquema aplicado")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func seedCommand(cfg **config.Config, log **logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Registra el producto de ejemplo " + sampleBarcode,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			backend, err := storage.Open(ctx, *cfg, *log)
			if err != nil {
				return err
			}
			defer backend.Close()
			return seed(ctx, usecase.NewProductUseCase(backend.Products, backend.TxRunner, *log), cmd.OutOrStdout())
		},
	}
}

func seed(ctx context.Context, uc *usecase.ProductUseCase, out io.Writer) error {
	cost := decimal.NewFromInt(5)
	sale := decimal.NewFromInt(10)
	p, err := uc.Create(ctx, dto.CreateProductRequest{
		Barcode:   sampleBarcode,
		Name:      "Produto Teste",
		Category:  "Teste",
		Quantity:  10,
		CostPrice: &cost,
		SalePrice: &sale,
		Supplier:  "Fornecedor Teste",
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		fmt.Fprintf(out, "%s ya existe\n", sampleBarcode)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s creado (quantidade=%d)\n", p.Barcode, p.Quantity)
	return nil
}

func tokenCommand(cfg **config.Config) *cobra.Command {
	var subject, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT para las rutas de escritura",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if subject == "" {
				return errors.New("--sub es obligatorio")
			}
			if role != jwt.RoleAdmin && role != jwt.RoleEstoquista {
				return fmt.Errorf("--role debe ser %s o %s", jwt.RoleAdmin, jwt.RoleEstoquista)
			}
			c := *cfg
			if !c.JWT.Enabled() {
				return errors.New("JWT_SECRET no configurado")
			}
			tok, err := jwt.Generate(c.JWT.Secret, subject, role, c.JWT.Issuer, c.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "sujeto (operador)")
	cmd.Flags().StringVar(&role, "role", jwt.RoleEstoquista, "rol: admin | estoquista")
	return cmd
}
