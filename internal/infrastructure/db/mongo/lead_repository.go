package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

const leadsCollection = "leads"

// LeadRepository implements ports.LeadRepository on MongoDB.
type LeadRepository struct {
	coll *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{coll: db.Collection(leadsCollection)}
}

type mongoLead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Agent     primitive.ObjectID `bson:"agent"`
	Admin     primitive.ObjectID `bson:"admin"`
	FirstName string             `bson:"first_name"`
	Phone     string             `bson:"phone"`
	Email     string             `bson:"email,omitempty"`
	Notes     string             `bson:"notes,omitempty"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (ml mongoLead) toDomain() *domain.Lead {
	return &domain.Lead{
		ID:        ml.ID.Hex(),
		AgentID:   ml.Agent.Hex(),
		AdminID:   ml.Admin.Hex(),
		FirstName: ml.FirstName,
		Phone:     ml.Phone,
		Email:     ml.Email,
		Notes:     ml.Notes,
		Status:    domain.LeadStatus(ml.Status),
		CreatedAt: ml.CreatedAt,
		UpdatedAt: ml.UpdatedAt,
	}
}

// InsertMany persists the batch as one ordered insert-many. There is no
// transaction around it: a crash mid-insert leaves the earlier documents
// behind with no compensating rollback.
func (r *LeadRepository) InsertMany(ctx context.Context, leads []*domain.Lead) ([]*domain.Lead, error) {
	docs := make([]interface{}, len(leads))
	for i, l := range leads {
		agent, err := primitive.ObjectIDFromHex(l.AgentID)
		if err != nil {
			return nil, fmt.Errorf("invalid agent id %q: %w", l.AgentID, err)
		}
		admin, err := primitive.ObjectIDFromHex(l.AdminID)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", l.AdminID, err)
		}
		docs[i] = mongoLead{
			Agent:     agent,
			Admin:     admin,
			FirstName: l.FirstName,
			Phone:     l.Phone,
			Email:     l.Email,
			Notes:     l.Notes,
			Status:    string(l.Status),
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		}
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert leads: %w", err)
	}

	out := make([]*domain.Lead, len(leads))
	for i, l := range leads {
		copy := *l
		copy.ID = res.InsertedIDs[i].(primitive.ObjectID).Hex()
		out[i] = &copy
	}
	return out, nil
}

func (r *LeadRepository) ListByAdmin(ctx context.Context, adminID string) ([]*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.list(ctx, bson.M{"admin": oid})
}

func (r *LeadRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.list(ctx, bson.M{"agent": oid})
}

func (r *LeadRepository) list(ctx context.Context, filter bson.M) ([]*domain.Lead, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer cur.Close(ctx)

	var leads []*domain.Lead
	for cur.Next(ctx) {
		var ml mongoLead
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode lead: %w", err)
		}
		leads = append(leads, ml.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) UpdateStatusByAdmin(ctx context.Context, id, adminID string, status domain.LeadStatus) (*domain.Lead, error) {
	return r.updateStatus(ctx, id, "admin", adminID, status)
}

func (r *LeadRepository) UpdateStatusByAgent(ctx context.Context, id, agentID string, status domain.LeadStatus) (*domain.Lead, error) {
	return r.updateStatus(ctx, id, "agent", agentID, status)
}

// updateStatus matches the lead id and owner in one filter; a miss on
// either is indistinguishable from a missing lead.
func (r *LeadRepository) updateStatus(ctx context.Context, id, ownerField, ownerID string, status domain.LeadStatus) (*domain.Lead, error) {
	leadOID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeadNotFound
	}
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrLeadNotFound
	}

	filter := bson.M{"_id": leadOID, ownerField: ownerOID}
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}

	var ml mongoLead
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead status: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LeadRepository) DeleteByAdmin(ctx context.Context, id, adminID string) error {
	leadOID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLeadNotFound
	}
	adminOID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return domain.ErrLeadNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": leadOID, "admin": adminOID})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) CountByAdmin(ctx context.Context, adminID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return r.coll.CountDocuments(ctx, bson.M{"admin": oid})
}

func (r *LeadRepository) CountAll(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the ownership indexes used by every scoped query.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "agent", Value: 1}}},
		{Keys: bson.D{{Key: "admin", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
