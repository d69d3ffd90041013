package job

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields is the mutable part of a posting. Update replaces all of them at once.
type Fields struct {
	CompanyName  string `bson:"companyName" json:"companyName"`
	Title        string `bson:"title" json:"title"`
	Description  string `bson:"description" json:"description"`
	LogoURL      string `bson:"logoUrl" json:"logoUrl"`
	Salary       Salary `bson:"salary" json:"salary"`
	Location     string `bson:"location" json:"location"`
	Duration     string `bson:"duration" json:"duration"`
	LocationType string `bson:"locationType" json:"locationType"`
	Skills       Skills `bson:"skills" json:"skills"`
}

type Posting struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Fields `bson:",inline"`

	RefUserID string    `bson:"refUserId" json:"refUserId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (p Posting) IDHex() string {
	if p.ID.IsZero() {
		return ""
	}
	return p.ID.Hex()
}
