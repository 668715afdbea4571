package qdrant

import (
	"context"
	"fmt"

	"github.com/barekit/cohort/pkg/chunker"
	"github.com/barekit/cohort/pkg/index"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QdrantIndex implements index.Index using Qdrant. Each namespace is
// backed by its own collection named "<prefix><namespace>".
type QdrantIndex struct {
	client     *qdrant.Client
	prefix     string
	vectorSize uint64
}

// New creates a new QdrantIndex.
func New(host string, port int, prefix string, vectorSize uint64) (*QdrantIndex, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &QdrantIndex{
		client:     client,
		prefix:     prefix,
		vectorSize: vectorSize,
	}, nil
}

func (s *QdrantIndex) collection(namespace string) string {
	return s.prefix + namespace
}

func (s *QdrantIndex) Status(ctx context.Context, namespace string) (index.Status, error) {
	name := s.collection(namespace)

	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return index.Status{}, fmt.Errorf("failed to check collection existence: %w", err)
	}
	if !exists {
		return index.Status{}, nil
	}

	exact := true
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: name,
		Exact:          &exact,
	})
	if err != nil {
		return index.Status{}, fmt.Errorf("failed to count points: %w", err)
	}

	return index.Status{Exists: true, VectorCount: count}, nil
}

func (s *QdrantIndex) Upsert(ctx context.Context, namespace string, chunks []chunker.Chunk, vectors [][]float32) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("number of vectors and chunks must match")
	}

	name := s.collection(namespace)
	if err := s.ensureCollection(ctx, name); err != nil {
		return err
	}

	points := make([]*qdrant.PointStruct, len(vectors))
	for i, chunk := range chunks {
		payload := map[string]*qdrant.Value{
			"text":   qdrant.NewValueString(chunk.Text),
			"doc_id": qdrant.NewValueString(chunk.DocID),
		}

		// Deterministic point id so re-ingesting overwrites instead of duplicating.
		pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunk.ID()))

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(pointID.String()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: payload,
		}
	}

	wait := true
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Points:         points,
		Wait:           &wait,
	})
	return err
}

func (s *QdrantIndex) Query(ctx context.Context, namespace string, vector []float32, limit int) ([]index.Match, error) {
	limit64 := uint64(limit)
	res, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection(namespace),
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit64,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	matches := make([]index.Match, len(res))
	for i, hit := range res {
		text := ""
		if t, ok := hit.Payload["text"]; ok {
			text = t.GetStringValue()
		}
		matches[i] = index.Match{
			Text:  text,
			Score: hit.Score,
		}
	}

	return matches, nil
}

func (s *QdrantIndex) ensureCollection(ctx context.Context, name string) error {
	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: name,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     s.vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
	}
	return nil
}
