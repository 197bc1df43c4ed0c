package implementation

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/internal/mapper"
	"lifehub-agent-be/internal/model"
	"lifehub-agent-be/internal/repository/contract"
	"lifehub-agent-be/internal/repository/specification"
)

type NoteChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteChunkMapper
}

func NewNoteChunkRepository(db *gorm.DB) contract.NoteChunkRepository {
	return &NoteChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteChunkMapper(),
	}
}

func (r *NoteChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.NoteChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.NoteChunk, len(chunks))
	for i, e := range chunks {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *NoteChunkRepositoryImpl) DeleteBySource(ctx context.Context, source string) error {
	return r.db.WithContext(ctx).Where("source = ?", source).Delete(&model.NoteChunk{}).Error
}

func (r *NoteChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteChunk, error) {
	var models []*model.NoteChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.NoteChunk{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns chunks with similarity scores.
// Cosine distance in pgvector is 1 - cosine_similarity, so we compute
// 1 - (embedding_value <=> query_vector). Ties resolve by insertion order
// (created_at, chunk_index) so results are deterministic.
func (r *NoteChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, provider, model_ string) ([]*contract.ScoredNoteChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.NoteChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("note_chunks").
		Select("note_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("provider = ? AND model = ?", provider, model_).
		Order("similarity DESC, created_at ASC, chunk_index ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredNoteChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredNoteChunk{
			Chunk:      r.mapper.ToEntity(&res.NoteChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
