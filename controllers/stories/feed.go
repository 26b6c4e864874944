package stories

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"

	"github.com/Ari-S-123/story-weaver/config"
	"github.com/Ari-S-123/story-weaver/models/story"
)

type feedStory struct {
	story.Story
	LikeCount int64 `json:"likeCount"`
}

type feedResponse struct {
	Stories []feedStory `json:"stories"`
	Meta    listMeta    `json:"meta"`
}

// Feed - публичная лента: только public-истории, отсортированные по числу
// лайков. Доступна без авторизации.
func Feed(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r, defaultFeedLimit)
	search := r.URL.Query().Get("search")

	q := applySearch(config.DB.Model(&story.Story{}).Where("visibility = ?", story.VisibilityPublic), search)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("Failed to count public stories: %v", err)
		http.Error(w, "Failed to fetch public stories", http.StatusInternalServerError)
		return
	}

	storiesList := []story.Story{}
	if err := q.Offset(offset).Limit(limit).Find(&storiesList).Error; err != nil {
		log.Printf("Failed to fetch public stories: %v", err)
		http.Error(w, "Failed to fetch public stories", http.StatusInternalServerError)
		return
	}

	storyIDs := make([]uint, 0, len(storiesList))
	for _, s := range storiesList {
		storyIDs = append(storyIDs, s.ID)
	}

	likeCounts := map[uint]int64{}
	if len(storyIDs) > 0 {
		var rows []struct {
			StoryID uint
			Count   int64
		}
		if err := config.DB.Model(&story.Like{}).
			Select("story_id, COUNT(*) AS count").
			Where("story_id IN ?", storyIDs).
			Group("story_id").
			Scan(&rows).Error; err != nil {
			log.Printf("Failed to count likes: %v", err)
			http.Error(w, "Failed to fetch public stories", http.StatusInternalServerError)
			return
		}
		for _, row := range rows {
			likeCounts[row.StoryID] = row.Count
		}
	}

	feed := make([]feedStory, 0, len(storiesList))
	for _, s := range storiesList {
		feed = append(feed, feedStory{Story: s, LikeCount: likeCounts[s.ID]})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].LikeCount > feed[j].LikeCount
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(feedResponse{
		Stories: feed,
		Meta:    listMeta{Total: total, Page: page, Limit: limit, PageCount: pageCount(total, limit)},
	})
}
