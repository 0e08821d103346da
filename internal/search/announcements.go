package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/techclub/club-portal/internal/models"
)

const announcementIndex = "announcements"

// Announcements is the full-text index over announcement title and content.
// The SQL LIKE fallback in the repository covers deployments without
// Elasticsearch.
type Announcements struct {
	ES *elasticsearch.Client
}

func (s *Announcements) Index(ctx context.Context, a *models.Announcement) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return err
	}
	res, err := s.ES.Index(
		announcementIndex,
		bytes.NewReader(doc),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(a.ID.String()),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index announcement: %s", res.Status())
	}
	return nil
}

func (s *Announcements) Remove(ctx context.Context, id string) error {
	res, err := s.ES.Delete(
		announcementIndex,
		id,
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove announcement: %s", res.Status())
	}
	return nil
}

func (s *Announcements) Search(ctx context.Context, query string, from, size int) (int64, []models.Announcement, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^2", "content"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"isActive": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(announcementIndex),
		s.ES.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search announcements: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Announcement `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	items := make([]models.Announcement, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}
