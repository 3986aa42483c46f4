package repo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medconnect/doctor-service/internal/doctor"
	"github.com/medconnect/doctor-service/internal/domain"
)

// searchFilter translates a SearchQuery into a mongo filter. Criteria are
// conjunctive; string matches are case-insensitive literal substrings (input
// is regex-quoted), list criteria are membership, numeric bounds are
// inclusive.
func searchFilter(q doctor.SearchQuery) bson.M {
	filter := bson.M{}
	if q.Name != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Name), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": re},
			bson.M{"lastName": re},
		}
	}
	if q.Specialization != "" {
		filter["specialization"] = bson.M{"$in": bson.A{q.Specialization}}
	}
	if q.Language != "" {
		filter["languages"] = bson.M{"$in": bson.A{q.Language}}
	}
	if q.Location != "" {
		filter["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Location), Options: "i"}
	}
	if q.MinExperience != nil {
		filter["experience"] = bson.M{"$gte": *q.MinExperience}
	}
	if q.MaxFee != nil {
		filter["consultationFee"] = bson.M{"$lte": *q.MaxFee}
	}
	return filter
}

// Search pages through matching doctors ordered by experience, most first.
// The total comes from a second count query, so it can lag the page under
// concurrent writes.
func (r *DoctorRepo) Search(ctx context.Context, q doctor.SearchQuery) (*doctor.SearchResults, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	filter := searchFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count doctors: %w", err)
	}

	opts := options.Find().
		SetProjection(bson.M{"password": 0, "salt": 0, "sessions": 0}).
		SetSort(bson.D{{Key: "experience", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find doctors: %w", err)
	}
	defer cur.Close(ctx)

	doctors := make([]domain.Doctor, 0, q.Limit)
	if err := cur.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}

	pages := int(total) / q.Limit
	if int(total)%q.Limit != 0 {
		pages++
	}
	return &doctor.SearchResults{
		Doctors: doctors,
		Pagination: doctor.Pagination{
			Total: total,
			Page:  q.Page,
			Limit: q.Limit,
			Pages: pages,
		},
	}, nil
}

func (r *DoctorRepo) List(ctx context.Context, page, limit int) (*doctor.SearchResults, error) {
	return r.Search(ctx, doctor.SearchQuery{Page: page, Limit: limit})
}
