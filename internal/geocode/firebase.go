// README: Firebase RTDB-backed resolver. Grounded on
// location.FirebaseService's app/db.Client construction, with the
// messaging.Client dropped — push notifications are out of scope for a
// search geocode lookup.
package geocode

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseResolver reads zip/city coordinates from RTDB nodes
// `/geo_zips/{zip}` and `/geo_cities/{city}`, each holding {lat, lng}.
type FirebaseResolver struct {
	client *db.Client
}

// NewFirebaseResolver initializes the Firebase Admin SDK against
// databaseURL using the service-account key at credentialsFile.
func NewFirebaseResolver(ctx context.Context, projectID, databaseURL, credentialsFile string) (*FirebaseResolver, error) {
	conf := &firebase.Config{DatabaseURL: databaseURL, ProjectID: projectID}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase rtdb client: %w", err)
	}
	return &FirebaseResolver{client: client}, nil
}

type geoEntry struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (r *FirebaseResolver) ResolveZip(ctx context.Context, zip string) (float64, float64, bool, error) {
	return r.lookup(ctx, "geo_zips", zip)
}

func (r *FirebaseResolver) ResolveCity(ctx context.Context, city string) (float64, float64, bool, error) {
	return r.lookup(ctx, "geo_cities", city)
}

func (r *FirebaseResolver) lookup(ctx context.Context, node, key string) (float64, float64, bool, error) {
	var entry geoEntry
	ref := r.client.NewRef(node).Child(key)
	if err := ref.Get(ctx, &entry); err != nil {
		return 0, 0, false, fmt.Errorf("querying %s/%s: %w", node, key, err)
	}
	if entry.Lat == 0 && entry.Lng == 0 {
		return 0, 0, false, nil
	}
	return entry.Lat, entry.Lng, true, nil
}
