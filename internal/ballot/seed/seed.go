// Package seed loads the demo community that a fresh store starts with.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

var ErrInvalidFixture = errors.New("seed: invalid fixture")

// Fixture is the YAML document. Entities reference each other by key, and
// every time is an offset from the moment the fixture is applied.
type Fixture struct {
	Users         []User         `yaml:"users"`
	Proposals     []Proposal     `yaml:"proposals"`
	Votes         []Vote         `yaml:"votes"`
	Comments      []Comment      `yaml:"comments"`
	Notifications []Notification `yaml:"notifications"`
}

type User struct {
	Key       string        `yaml:"key"`
	Name      string        `yaml:"name"`
	Role      domain.Role   `yaml:"role"`
	Joined    time.Duration `yaml:"joined"`
	Following []string      `yaml:"following"`
}

type Proposal struct {
	Key         string        `yaml:"key"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Author      string        `yaml:"author"`
	Tags        []string      `yaml:"tags"`
	Status      string        `yaml:"status"`
	Created     time.Duration `yaml:"created"`
	Deadline    time.Duration `yaml:"deadline"`
}

type Vote struct {
	Proposal string        `yaml:"proposal"`
	Voter    string        `yaml:"voter"`
	Option   string        `yaml:"option"`
	At       time.Duration `yaml:"at"`
}

type Comment struct {
	Proposal string        `yaml:"proposal"`
	Author   string        `yaml:"author"`
	Content  string        `yaml:"content"`
	At       time.Duration `yaml:"at"`
}

type Notification struct {
	Type    domain.NotificationType `yaml:"type"`
	Message string                  `yaml:"message"`
	Link    string                  `yaml:"link"`
	Read    bool                    `yaml:"read"`
	At      time.Duration           `yaml:"at"`
}

// Default returns the fixture compiled into the binary.
func Default() (Fixture, error) { return Parse(defaultFixture) }

// Load reads a fixture from path, or the default one when path is empty.
func Load(path string) (Fixture, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and checks a fixture. Unknown fields are rejected.
func Parse(b []byte) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	if err := f.validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

func (f Fixture) validate() error {
	users := map[string]bool{}
	for _, u := range f.Users {
		if u.Key == "" || u.Name == "" {
			return fmt.Errorf("%w: user needs key and name", ErrInvalidFixture)
		}
		if users[u.Key] {
			return fmt.Errorf("%w: duplicate user key %q", ErrInvalidFixture, u.Key)
		}
		switch u.Role {
		case "", domain.RoleMember, domain.RoleAdmin:
		default:
			return fmt.Errorf("%w: user %q has unknown role %q", ErrInvalidFixture, u.Key, u.Role)
		}
		users[u.Key] = true
	}
	for _, u := range f.Users {
		for _, target := range u.Following {
			if !users[target] || target == u.Key {
				return fmt.Errorf("%w: user %q cannot follow %q", ErrInvalidFixture, u.Key, target)
			}
		}
	}

	proposals := map[string]bool{}
	for _, p := range f.Proposals {
		if p.Key == "" || proposals[p.Key] {
			return fmt.Errorf("%w: proposal key %q missing or duplicated", ErrInvalidFixture, p.Key)
		}
		if !users[p.Author] {
			return fmt.Errorf("%w: proposal %q has unknown author %q", ErrInvalidFixture, p.Key, p.Author)
		}
		if _, err := domain.ParseStatus(p.Status); err != nil {
			return fmt.Errorf("%w: proposal %q: %v", ErrInvalidFixture, p.Key, err)
		}
		proposals[p.Key] = true
	}

	type pair struct{ p, u string }
	voted := map[pair]bool{}
	for _, v := range f.Votes {
		if !proposals[v.Proposal] || !users[v.Voter] {
			return fmt.Errorf("%w: vote %s/%s references unknown key", ErrInvalidFixture, v.Proposal, v.Voter)
		}
		if _, err := domain.ParseVoteOption(v.Option); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
		}
		if voted[pair{v.Proposal, v.Voter}] {
			return fmt.Errorf("%w: %q voted twice on %q", ErrInvalidFixture, v.Voter, v.Proposal)
		}
		voted[pair{v.Proposal, v.Voter}] = true
	}
	for _, c := range f.Comments {
		if !proposals[c.Proposal] || !users[c.Author] {
			return fmt.Errorf("%w: comment on %q references unknown key", ErrInvalidFixture, c.Proposal)
		}
	}
	for _, n := range f.Notifications {
		if n.Link != "" && !proposals[n.Link] {
			return fmt.Errorf("%w: notification links unknown proposal %q", ErrInvalidFixture, n.Link)
		}
	}
	return nil
}

// Apply writes f into st in one transaction. A store that already has users
// is left untouched and Apply reports false.
func Apply(ctx context.Context, st store.Store, f Fixture, now time.Time) (bool, error) {
	applied := false
	err := st.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().ListUsers(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		users := make(map[string]domain.User, len(f.Users))
		for _, u := range f.Users {
			role := u.Role
			if role == "" {
				role = domain.RoleMember
			}
			created, err := tx.Users().CreateUser(ctx, domain.User{
				Name:     u.Name,
				Role:     role,
				JoinedAt: now.Add(u.Joined),
			})
			if err != nil {
				return fmt.Errorf("seed user %q: %w", u.Key, err)
			}
			users[u.Key] = created
		}
		for _, u := range f.Users {
			for _, target := range u.Following {
				if err := tx.Users().AddFollow(ctx, users[u.Key].ID, users[target].ID); err != nil {
					return fmt.Errorf("seed follow %q -> %q: %w", u.Key, target, err)
				}
			}
		}

		proposals := make(map[string]domain.Proposal, len(f.Proposals))
		for _, p := range f.Proposals {
			status, _ := domain.ParseStatus(p.Status)
			author := users[p.Author]
			created, err := tx.Proposals().CreateProposal(ctx, domain.Proposal{
				Title:       p.Title,
				Description: p.Description,
				AuthorID:    author.ID,
				AuthorName:  author.Name,
				Tags:        domain.NormalizeTags(p.Tags),
				Status:      status,
				CreatedAt:   now.Add(p.Created),
				Deadline:    now.Add(p.Deadline),
			})
			if err != nil {
				return fmt.Errorf("seed proposal %q: %w", p.Key, err)
			}
			proposals[p.Key] = created
		}

		for _, v := range f.Votes {
			option, _ := domain.ParseVoteOption(v.Option)
			voter := users[v.Voter]
			if _, err := tx.Votes().CreateVote(ctx, domain.Vote{
				ProposalID: proposals[v.Proposal].ID,
				VoterID:    voter.ID,
				VoterName:  voter.Name,
				Option:     option,
				CreatedAt:  now.Add(v.At),
			}); err != nil {
				return fmt.Errorf("seed vote %s/%s: %w", v.Proposal, v.Voter, err)
			}
		}

		for _, c := range f.Comments {
			author := users[c.Author]
			if _, err := tx.Comments().CreateComment(ctx, domain.Comment{
				ProposalID: proposals[c.Proposal].ID,
				AuthorID:   author.ID,
				AuthorName: author.Name,
				Content:    c.Content,
				CreatedAt:  now.Add(c.At),
			}); err != nil {
				return fmt.Errorf("seed comment on %q: %w", c.Proposal, err)
			}
		}

		for _, n := range f.Notifications {
			var link *int64
			if n.Link != "" {
				link = domain.Link(proposals[n.Link].ID)
			}
			if _, err := tx.Notifications().CreateNotification(ctx, domain.Notification{
				Type:      n.Type,
				Message:   n.Message,
				LinkID:    link,
				Read:      n.Read,
				CreatedAt: now.Add(n.At),
			}); err != nil {
				return fmt.Errorf("seed notification %q: %w", n.Type, err)
			}
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied {
		slogx.FromContext(ctx).Info("store seeded",
			slog.Int("users", len(f.Users)),
			slog.Int("proposals", len(f.Proposals)),
			slog.Int("votes", len(f.Votes)),
			slog.Int("comments", len(f.Comments)),
		)
	}
	return applied, nil
}
