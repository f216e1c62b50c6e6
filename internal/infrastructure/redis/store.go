// Package redis implementa Product Store, libro de movimientos y TxRunner sobre Redis.
// Cada producto es una clave JSON; la unidad de trabajo usa WATCH sobre esa clave y
// publica sus escrituras en un único MULTI/EXEC.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/pkg/config"
)

// DefaultPrefix prefijo de todas las claves de la aplicación.
const DefaultPrefix = "estoque:"

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Store agrupa el cliente y el espacio de claves.
type Store struct {
	client *redis.Client
	keys   keys
}

// NewStore construye el almacenamiento; prefix aísla instancias que comparten servidor.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, keys: keys{prefix: prefix}}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo {
	return &ProductRepo{s: s, rdb: s.client}
}

// Movements libro de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo {
	return &MovementRepo{s: s, rdb: s.client}
}

// TxRunner ejecutor de unidades de trabajo.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{s: s}
}

// commander subconjunto de comandos común a *redis.Client y *redis.Tx.
type commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

type keys struct {
	prefix string
}

func (k keys) product(barcode string) string { return k.prefix + "product:" + barcode }
func (k keys) productSet() string            { return k.prefix + "products" }
func (k keys) movements() string             { return k.prefix + "movements" }

type productRecord struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Supplier  string          `json:"supplier"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func encodeProduct(p *entity.Product) ([]byte, error) {
	return json.Marshal(productRecord{
		Barcode: p.Barcode, Name: p.Name, Category: p.Category, Quantity: p.Quantity,
		CostPrice: p.CostPrice, SalePrice: p.SalePrice, Supplier: p.Supplier,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	})
}

func decodeProduct(data []byte) (*entity.Product, error) {
	var rec productRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decodificar producto: %w", err)
	}
	return &entity.Product{
		Barcode: rec.Barcode, Name: rec.Name, Category: rec.Category, Quantity: rec.Quantity,
		CostPrice: rec.CostPrice, SalePrice: rec.SalePrice, Supplier: rec.Supplier,
		CreatedAt: rec.CreatedAt.UTC(), UpdatedAt: rec.UpdatedAt.UTC(),
	}, nil
}

type movementRecord struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Quantity  int       `json:"quantity"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func encodeMovement(m *entity.Movement) ([]byte, error) {
	return json.Marshal(movementRecord{
		ID: m.ID, Barcode: m.ProductBarcode, Quantity: m.Quantity,
		Type: string(m.Type), Reason: m.Reason, Timestamp: m.Timestamp,
	})
}

func decodeMovement(data []byte) (*entity.Movement, error) {
	var rec movementRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decodificar movimiento: %w", err)
	}
	return &entity.Movement{
		ID: rec.ID, ProductBarcode: rec.Barcode, Quantity: rec.Quantity,
		Type: entity.MovementType(rec.Type), Reason: rec.Reason, Timestamp: rec.Timestamp.UTC(),
	}, nil
}

// sortNewestFirst ordena por Timestamp descendente; en empate gana el insertado después.
func sortNewestFirst(list []*entity.Movement) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}
