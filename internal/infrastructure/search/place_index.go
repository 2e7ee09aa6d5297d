package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/internal/domain/entity"
)

// PlaceIndex mirrors place records into Elasticsearch. Indexing is a
// best-effort side channel: the store of record is Postgres and every
// failure here is logged, never surfaced to the request.
type PlaceIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewPlaceIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *PlaceIndex {
	return &PlaceIndex{ES: es, Index: index, Logger: logger}
}

func (i *PlaceIndex) IndexPlace(ctx context.Context, p *entity.Place) error {
	if i == nil || i.ES == nil || i.Index == "" {
		return nil
	}
	doc := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"address":     p.Address,
		"location":    map[string]float64{"lat": p.Location.Lat, "lng": p.Location.Lng},
		"image":       p.ImageURL,
		"creator":     p.CreatorID,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: i.Index, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		if i.Logger != nil {
			i.Logger.WithError(err).WithField("place_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && i.Logger != nil {
		i.Logger.WithField("status", res.Status()).WithField("place_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (i *PlaceIndex) DeletePlace(ctx context.Context, id string) error {
	if i == nil || i.ES == nil || i.Index == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: i.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		if i.Logger != nil {
			i.Logger.WithError(err).WithField("place_id", id).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// SearchPlaces performs a multi_match over title, description, and address.
func (i *PlaceIndex) SearchPlaces(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if i == nil || i.ES == nil || i.Index == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "address"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := i.ES.Search(
		i.ES.Search.WithContext(c),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
