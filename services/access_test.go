package services

import (
	"testing"

	"github.com/Ari-S-123/story-weaver/models/story"
)

var (
	anonymous = Identity{}
	owner     = Identity{UserID: 1}
	ownerOrg  = Identity{UserID: 1, OrgID: 10}
	member    = Identity{UserID: 2, OrgID: 10}
	outsider  = Identity{UserID: 3}
	otherOrg  = Identity{UserID: 4, OrgID: 20}
)

func publicStory() story.Story {
	return story.Story{ID: 100, OwnerID: 1, Visibility: story.VisibilityPublic}
}

func privateStory() story.Story {
	return story.Story{ID: 101, OwnerID: 1, Visibility: story.VisibilityPrivate}
}

func orgStory(visibility string) story.Story {
	return story.Story{ID: 102, OwnerID: 1, OrganizationID: 10, Visibility: visibility}
}

func TestCanRead(t *testing.T) {
	tests := []struct {
		name  string
		story story.Story
		id    Identity
		want  bool
	}{
		{"public story, anonymous", publicStory(), anonymous, true},
		{"public story, outsider", publicStory(), outsider, true},
		{"public story, owner", publicStory(), owner, true},
		{"private story, anonymous", privateStory(), anonymous, false},
		{"private story, owner", privateStory(), owner, true},
		{"private story, outsider", privateStory(), outsider, false},
		{"private org story, member", orgStory(story.VisibilityPrivate), member, true},
		{"private org story, other org", orgStory(story.VisibilityPrivate), otherOrg, false},
		{"private org story, anonymous", orgStory(story.VisibilityPrivate), anonymous, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRead(tt.story, tt.id); got != tt.want {
				t.Errorf("CanRead() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanWrite(t *testing.T) {
	tests := []struct {
		name  string
		story story.Story
		id    Identity
		want  bool
	}{
		{"anonymous never writes", publicStory(), anonymous, false},
		{"owner writes", privateStory(), owner, true},
		{"outsider cannot write public story", publicStory(), outsider, false},
		{"org member writes org story", orgStory(story.VisibilityPrivate), member, true},
		{"other org cannot write", orgStory(story.VisibilityPublic), otherOrg, false},
		{"member org does not leak onto non-org story", privateStory(), member, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWrite(tt.story, tt.id); got != tt.want {
				t.Errorf("CanWrite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanLike(t *testing.T) {
	tests := []struct {
		name  string
		story story.Story
		id    Identity
		want  bool
	}{
		{"anonymous cannot like", publicStory(), anonymous, false},
		{"owner cannot like own story", publicStory(), owner, false},
		{"outsider likes public story", publicStory(), outsider, true},
		{"private story cannot be liked by anyone", privateStory(), outsider, false},
		{"private org story cannot be liked even by member", orgStory(story.VisibilityPrivate), member, false},
		{"public org story liked by member", orgStory(story.VisibilityPublic), member, true},
		{"owner of org story still cannot self-like", orgStory(story.VisibilityPublic), ownerOrg, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanLike(tt.story, tt.id); got != tt.want {
				t.Errorf("CanLike() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanFavorite(t *testing.T) {
	tests := []struct {
		name  string
		story story.Story
		id    Identity
		want  bool
	}{
		{"anonymous cannot favorite", publicStory(), anonymous, false},
		{"owner favorites own private story", privateStory(), owner, true},
		{"anyone favorites public story", publicStory(), outsider, true},
		{"outsider cannot favorite private story", privateStory(), outsider, false},
		{"member favorites private org story", orgStory(story.VisibilityPrivate), member, true},
		{"other org cannot favorite private org story", orgStory(story.VisibilityPrivate), otherOrg, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanFavorite(tt.story, tt.id); got != tt.want {
				t.Errorf("CanFavorite() = %v, want %v", got, tt.want)
			}
		})
	}
}
