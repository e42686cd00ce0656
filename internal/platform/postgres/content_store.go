package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresContentStore implements the store.ContentStore interface
// using a PostgreSQL database as the storage backend.
//
// The multi-row save methods rely on the caller holding a transaction (via
// WithTx + store.RunInTransaction) for atomicity; they insert row by row and
// return the first error, which rolls the whole save back.
type PostgresContentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContentStore creates a new PostgreSQL implementation of the
// ContentStore interface.
func NewPostgresContentStore(db store.DBTX, logger *slog.Logger) *PostgresContentStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresContentStore{
		db:     db,
		logger: logger.With(slog.String("component", "content_store")),
	}
}

// Ensure PostgresContentStore implements store.ContentStore
var _ store.ContentStore = (*PostgresContentStore)(nil)

// SaveFlashcards implements store.ContentStore.SaveFlashcards.
// Cards are appended; existing cards for the topic are never touched.
func (s *PostgresContentStore) SaveFlashcards(
	ctx context.Context,
	cards []*domain.Flashcard,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return fmt.Errorf("%w: no flashcards to save", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO flashcards (id, topic_id, front, back, difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		if _, err := s.db.ExecContext(
			ctx,
			query,
			card.ID,
			card.TopicID,
			card.Front,
			card.Back,
			card.Difficulty,
			card.CreatedAt,
		); err != nil {
			return s.wrapInsertError(log, "flashcard", card.ID.String(), err)
		}
	}

	log.Info("flashcards saved",
		slog.Int("count", len(cards)),
		slog.String("topic_id", cards[0].TopicID.String()))
	return nil
}

// SaveQuiz implements store.ContentStore.SaveQuiz. The quiz row, its
// questions (in generation order), and each question's options are inserted
// in sequence; the surrounding transaction makes the three levels atomic.
func (s *PostgresContentStore) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := quiz.Validate(); err != nil {
		log.Warn("quiz validation failed during save",
			slog.String("error", err.Error()),
			slog.String("quiz_id", quiz.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	quizQuery := `
		INSERT INTO quizzes (id, topic_id, title, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(
		ctx, quizQuery, quiz.ID, quiz.TopicID, quiz.Title, quiz.CreatedAt,
	); err != nil {
		return s.wrapInsertError(log, "quiz", quiz.ID.String(), err)
	}

	questionQuery := `
		INSERT INTO quiz_questions (id, quiz_id, position, text)
		VALUES ($1, $2, $3, $4)
	`
	optionQuery := `
		INSERT INTO quiz_options (id, question_id, text, is_correct)
		VALUES ($1, $2, $3, $4)
	`

	for _, question := range quiz.Questions {
		if _, err := s.db.ExecContext(
			ctx, questionQuery, question.ID, question.QuizID, question.Position, question.Text,
		); err != nil {
			return s.wrapInsertError(log, "quiz question", question.ID.String(), err)
		}

		for _, option := range question.Options {
			if _, err := s.db.ExecContext(
				ctx, optionQuery, option.ID, option.QuestionID, option.Text, option.IsCorrect,
			); err != nil {
				return s.wrapInsertError(log, "quiz option", option.ID.String(), err)
			}
		}
	}

	log.Info("quiz saved",
		slog.String("quiz_id", quiz.ID.String()),
		slog.String("topic_id", quiz.TopicID.String()),
		slog.Int("questions", len(quiz.Questions)))
	return nil
}

// SaveMindMap implements store.ContentStore.SaveMindMap. The embedded
// structure is validated first so graphs with orphan nodes are rejected
// before anything is written.
func (s *PostgresContentStore) SaveMindMap(ctx context.Context, mindMap *domain.MindMap) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := mindMap.Validate(); err != nil {
		log.Warn("mind map validation failed during save",
			slog.String("error", err.Error()),
			slog.String("mind_map_id", mindMap.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO mind_maps (id, topic_id, structure, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(
		ctx, query, mindMap.ID, mindMap.TopicID, mindMap.Structure, mindMap.CreatedAt,
	); err != nil {
		return s.wrapInsertError(log, "mind map", mindMap.ID.String(), err)
	}

	log.Info("mind map saved",
		slog.String("mind_map_id", mindMap.ID.String()),
		slog.String("topic_id", mindMap.TopicID.String()))
	return nil
}

// WithTx implements store.ContentStore.WithTx
func (s *PostgresContentStore) WithTx(tx *sql.Tx) store.ContentStore {
	return &PostgresContentStore{
		db:     tx,
		logger: s.logger,
	}
}

// wrapInsertError translates driver errors into store errors, flagging
// foreign-key violations (missing parent topic/quiz/question) as invalid
// entities rather than opaque failures.
func (s *PostgresContentStore) wrapInsertError(
	log *slog.Logger,
	entity, id string,
	err error,
) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
		log.Warn("foreign key violation during content save",
			slog.String("entity", entity),
			slog.String("id", id))
		return fmt.Errorf("%w: %s references a missing parent", store.ErrInvalidEntity, entity)
	}

	log.Error("failed to save generated content",
		slog.String("entity", entity),
		slog.String("id", id),
		slog.String("error", err.Error()))
	return store.NewStoreError(entity, "save", "insert failed", err)
}
