package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/models"
)

// Indexer mirrors catalog mutations into an ES index. All methods are
// nil-safe no-ops when no client is configured, and callers treat failures
// as best-effort: the catalog write has already happened.
type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

type productDoc struct {
	ID          uuid.UUID `json:"id"`
	SellerID    uuid.UUID `json:"sellerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
}

func newProductDoc(p *models.Product) productDoc {
	return productDoc{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
	}
}

func (d productDoc) product() models.Product {
	return models.Product{
		ID:          d.ID,
		SellerID:    d.SellerID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Image:       d.Image,
	}
}

func (ix *Indexer) IndexProduct(ctx context.Context, p *models.Product) error {
	if ix == nil || ix.ES == nil {
		return nil
	}
	data, err := json.Marshal(newProductDoc(p))
	if err != nil {
		return err
	}
	res, err := ix.ES.Index(ix.Index, bytes.NewReader(data),
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product: %s", res.Status())
	}
	return nil
}

func (ix *Indexer) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if ix == nil || ix.ES == nil {
		return nil
	}
	res, err := ix.ES.Delete(ix.Index, id.String(), ix.ES.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("deindex product: %s", res.Status())
	}
	return nil
}

// TryIndex logs and moves on. Catalog mutations never fail on search lag.
func (ix *Indexer) TryIndex(ctx context.Context, p *models.Product) {
	if err := ix.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", p.ID, "error", err)
	}
}

func (ix *Indexer) TryDelete(ctx context.Context, id uuid.UUID) {
	if err := ix.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("es deindex error", "product_id", id, "error", err)
	}
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search error: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		var doc productDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		prods = append(prods, doc.product())
	}
	return r.Hits.Total.Value, prods, nil
}
