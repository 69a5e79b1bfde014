package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

// MovieRepository implements ports.MovieRepository on the peliculas collection.
type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(moviesCollection)}
}

type mongoMovie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"nombre"`
	Actors      []string           `bson:"actores"`
	Director    string             `bson:"director"`
	Genre       string             `bson:"género"`
	Rating      float64            `bson:"calificación"`
	ReleaseYear int                `bson:"año_de_lanzamiento"`
}

func fromDomain(m *domain.Movie) mongoMovie {
	return mongoMovie{
		Name:        m.Name,
		Actors:      m.Actors,
		Director:    m.Director,
		Genre:       m.Genre,
		Rating:      m.Rating,
		ReleaseYear: m.ReleaseYear,
	}
}

func (mm mongoMovie) toDomain() domain.Movie {
	actors := mm.Actors
	if actors == nil {
		actors = []string{}
	}
	return domain.Movie{
		ID:          mm.ID.Hex(),
		Name:        mm.Name,
		Actors:      actors,
		Director:    mm.Director,
		Genre:       mm.Genre,
		Rating:      mm.Rating,
		ReleaseYear: mm.ReleaseYear,
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidMovieID
	}
	return oid, nil
}

// List returns every movie in insertion order.
func (r *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoMovie
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	movies := make([]domain.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, d.toDomain())
	}
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMovie
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	m := mm.toDomain()
	return &m, nil
}

// Create inserts a new movie document and returns its generated id.
func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomain(m))
	if err != nil {
		return "", fmt.Errorf("insert movie: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert movie: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update replaces the six movie fields of the document with the given id.
func (r *MovieRepository) Update(ctx context.Context, id string, m *domain.Movie) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fromDomain(m)})
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}
