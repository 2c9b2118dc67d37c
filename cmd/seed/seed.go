package seed

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/dinerozz/datahive-backend/config"
	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/pipeline"
	"github.com/dinerozz/datahive-backend/internal/repository"
	"github.com/dinerozz/datahive-backend/internal/service/product"
	"github.com/dinerozz/datahive-backend/internal/service/redis"
	"github.com/dinerozz/datahive-backend/pkg/obfuscate"
	"github.com/spf13/cobra"
)

// GetSeedCmd prints the obfuscated form of a label (or reads one back) and
// optionally registers a product, for preparing ledger and database test data.
func GetSeedCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var label, encoded string
	var item entity.Product

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Obfuscate a label or register a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if label == "" && encoded == "" && item.ID == "" {
				return fmt.Errorf("nothing to do: pass --label, --decode or --product-id")
			}

			if label != "" {
				if err := PrintLabel(cmd.OutOrStdout(), label); err != nil {
					return err
				}
			}
			if encoded != "" {
				if err := PrintDecoded(cmd.OutOrStdout(), encoded); err != nil {
					return err
				}
			}

			if item.ID == "" {
				return nil
			}
			if item.Name == "" || item.Category == "" {
				return fmt.Errorf("--name and --category are required with --product-id")
			}

			ctx := cmd.Context()
			db, err := repository.NewRepository(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			// nil cache if redis is down; nothing to invalidate then
			var cache product.Cache
			if svc, err := redis.NewRedisService(ctx, redis.RedisConfig{
				Host:     cfg.Redis.Host,
				Port:     cfg.Redis.Port,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			}); err == nil {
				defer svc.Close()
				cache = svc
			}

			products := product.NewProductService(repository.NewProductRepository(db), cache, cfg.Redis.ProductCacheTTL, logger)
			if err := products.Save(ctx, item); err != nil {
				return fmt.Errorf("save product %s: %w", item.ID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Product %s saved\n", item.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "add-to-cart label: %s%s\n", pipeline.AddToCartPrefix, item.ID)
			return nil
		},
	}

	seedCmd.Flags().StringVar(&label, "label", "", "Plain label to obfuscate")
	seedCmd.Flags().StringVar(&encoded, "decode", "", "Base64 obfuscated label to read back")
	seedCmd.Flags().StringVar(&item.ID, "product-id", "", "Product id to register")
	seedCmd.Flags().StringVar(&item.Name, "name", "", "Product name")
	seedCmd.Flags().StringVar(&item.Category, "category", "", "Product category")

	return seedCmd
}

// PrintLabel writes the ledger encodings of an obfuscated label.
func PrintLabel(w io.Writer, label string) error {
	blob, err := obfuscate.Encrypt([]byte(label), obfuscate.Passphrase)
	if err != nil {
		return fmt.Errorf("obfuscate %q: %w", label, err)
	}
	fmt.Fprintf(w, "base64: %s\n", base64.StdEncoding.EncodeToString(blob))
	fmt.Fprintf(w, "hex:    0x%s\n", hex.EncodeToString(blob))
	return nil
}

// PrintDecoded writes the plain text of a base64 obfuscated label, as the
// dashboard would read it.
func PrintDecoded(w io.Writer, encoded string) error {
	plain, err := obfuscate.DecryptBase64(encoded, obfuscate.Passphrase)
	if err != nil {
		return fmt.Errorf("decode %q: %w", encoded, err)
	}
	fmt.Fprintf(w, "label: %q\n", plain)
	return nil
}
