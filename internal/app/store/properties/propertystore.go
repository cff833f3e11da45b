package propertystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// FeaturedLimit is how many featured listings the landing page shows.
const FeaturedLimit = 6

var (
	ErrNotFound      = errors.New("property not found")
	ErrDuplicateSlug = errors.New("could not generate a unique slug")
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
	now   func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("properties"),
		users: db.Collection("users"),
		now:   time.Now,
	}
}

// SearchResult is one page of matches plus the total match count.
type SearchResult struct {
	Properties []models.PropertyView
	Total      int64
}

// Search runs the find and the count concurrently.
func (s *Store) Search(ctx context.Context, p SearchParams) (SearchResult, error) {
	filter := p.Filter()
	var (
		props []models.Property
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := p.Page.Apply(options.Find().SetSort(SortFor(p.Sort)))
		cur, err := s.c.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("find properties: %w", err)
		}
		defer cur.Close(gctx)
		return cur.All(gctx, &props)
	})
	g.Go(func() error {
		n, err := s.c.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count properties: %w", err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return SearchResult{}, err
	}

	views, err := s.Populate(ctx, props, AgentListing)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Properties: views, Total: total}, nil
}

// Featured returns up to limit active featured listings, newest first.
func (s *Store) Featured(ctx context.Context, limit int) ([]models.PropertyView, error) {
	if limit <= 0 {
		limit = FeaturedLimit
	}
	opts := options.Find().SetSort(SortFor(SortNewest)).SetLimit(int64(limit))
	return s.findViews(ctx, bson.M{"featured": true, "is_active": true}, opts, AgentCard)
}

// ByAgent returns an agent's active listings, newest first.
func (s *Store) ByAgent(ctx context.Context, agentID primitive.ObjectID) ([]models.PropertyView, error) {
	opts := options.Find().SetSort(SortFor(SortNewest))
	return s.findViews(ctx, bson.M{"agent": agentID, "is_active": true}, opts, AgentCard)
}

func (s *Store) findViews(ctx context.Context, filter bson.M, opts *options.FindOptions, fields AgentFields) ([]models.PropertyView, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, err
	}
	return s.Populate(ctx, props, fields)
}

// GetByID loads a listing regardless of its active flag.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// View loads a listing for its detail page, counting the view atomically
// and populating the agent's full public profile.
func (s *Store) View(ctx context.Context, id primitive.ObjectID) (*models.PropertyView, error) {
	var p models.Property
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	views, err := s.Populate(ctx, []models.Property{p}, AgentFull)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Store) slugFor(title string) string {
	return fmt.Sprintf("%s-%d", normalize.Slug(title), s.now().UnixMilli())
}

func foldLocation(l *models.Location) {
	l.CityCI = text.Fold(l.City)
	l.AreaCI = text.Fold(l.Area)
}

// Create inserts a new listing. The slug is derived from the title and a
// millisecond timestamp; a collision retries with an extra random suffix.
func (s *Store) Create(ctx context.Context, p models.Property) (models.Property, error) {
	p.ID = primitive.NewObjectID()
	p.Title = normalize.Name(p.Title)
	p.Features = normalize.StringList(p.Features)
	if p.Images == nil {
		p.Images = []models.Image{}
	}
	foldLocation(&p.Location)
	p.Views, p.Saves = 0, 0

	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	base := s.slugFor(p.Title)
	p.Slug = base
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.c.InsertOne(ctx, p)
		if err == nil {
			return p, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Property{}, err
		}
		p.Slug = base + "-" + primitive.NewObjectID().Hex()[18:]
	}
	return models.Property{}, ErrDuplicateSlug
}

// Update holds editable listing fields. Nil fields are left unchanged.
type Update struct {
	Title       *string
	Description *string
	Type        *models.PropertyType
	Status      *models.ListingStatus
	Price       *float64
	Location    *models.Location
	Details     *models.Details
	Features    *[]string
	Images      *[]models.Image
	Featured    *bool
	IsActive    *bool
}

// Update applies upd and returns the updated listing. A changed title
// regenerates the slug.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Property, error) {
	set := bson.M{"updated_at": s.now().UTC()}

	if upd.Title != nil {
		title := normalize.Name(*upd.Title)
		cur, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if title != cur.Title {
			set["title"] = title
			set["slug"] = s.slugFor(title)
		}
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Location != nil {
		loc := *upd.Location
		foldLocation(&loc)
		set["location"] = loc
	}
	if upd.Details != nil {
		set["details"] = *upd.Details
	}
	if upd.Features != nil {
		set["features"] = normalize.StringList(*upd.Features)
	}
	if upd.Images != nil {
		imgs := *upd.Images
		if imgs == nil {
			imgs = []models.Image{}
		}
		set["images"] = imgs
	}
	if upd.Featured != nil {
		set["featured"] = *upd.Featured
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var p models.Property
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		case wafflemongo.IsDup(err):
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the listing. Saved-list references to it become dangling
// and are dropped on read and by the prune job.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveByAgent counts an agent's active listings.
func (s *Store) CountActiveByAgent(ctx context.Context, agentID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"agent": agentID, "is_active": true})
}

// FindByIDs loads listings whose IDs are in ids, in no particular order.
func (s *Store) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Property{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistingIDs reports which of ids still have a listing.
func (s *Store) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	out := make(map[primitive.ObjectID]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.ID] = struct{}{}
	}
	return out, cur.Err()
}
