package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/jammission/backend/internal/config"
	"github.com/jammission/backend/internal/models"
)

const ProductIndex = "products"

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("es: create client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es: info: %s", res.String())
	}
	return client, nil
}

// IndexProduct upserts one product document keyed by its id.
func IndexProduct(ctx context.Context, client *elasticsearch.Client, p *models.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := client.Index(
		ProductIndex,
		bytes.NewReader(body),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index product %d: %s", p.ID, res.String())
	}
	return nil
}

func DeleteProduct(ctx context.Context, client *elasticsearch.Client, id uint) error {
	res, err := client.Delete(
		ProductIndex,
		strconv.FormatUint(uint64(id), 10),
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete product %d: %s", id, res.String())
	}
	return nil
}
