// Package apitest runs an in-memory stand-in for the voting API so the
// client, TUI and CLI can be exercised end to end.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Makepad-fr/mediavote/internal/model"
)

// Upload is what the fake saw on the last POST /items.
type Upload struct {
	Fields   map[string]string
	HasFile  bool
	FileName string
	FileData []byte
}

type Server struct {
	*httptest.Server

	mu    sync.Mutex
	items []model.Item
	stats model.Stats

	// Non-zero fail codes make the route answer with that status.
	failItems int
	failStats int
	failVote  int
	failAdd   int

	itemsCalls int
	statsCalls int
	votes      []Vote
	uploads    []Upload
}

type Vote struct {
	ItemID      string
	Body        model.VoteRequest
	ContentType string
}

// New starts a fake API; its URL plus "/api" is the client base URL.
func New(items []model.Item, stats model.Stats) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{items: items, stats: stats}

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/items", s.listItems)
		api.GET("/stats", s.getStats)
		api.POST("/items", s.addItem)
		api.POST("/items/:id/vote", s.vote)
	}
	s.Server = httptest.NewServer(r)
	return s
}

func (s *Server) BaseURL() string { return s.URL + "/api" }

func (s *Server) listItems(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsCalls++
	if s.failItems != 0 {
		c.JSON(s.failItems, gin.H{"error": "items unavailable"})
		return
	}
	c.JSON(http.StatusOK, s.items)
}

func (s *Server) getStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsCalls++
	if s.failStats != 0 {
		c.JSON(s.failStats, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, s.stats)
}

func (s *Server) vote(c *gin.Context) {
	var req model.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	s.votes = append(s.votes, Vote{ItemID: id, Body: req, ContentType: c.GetHeader("Content-Type")})
	if s.failVote != 0 {
		c.JSON(s.failVote, gin.H{"error": "vote rejected"})
		return
	}
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		switch req.Type {
		case model.VoteLike:
			s.items[i].Gostei++
			s.stats.TotalGostei++
		case model.VoteDislike:
			s.items[i].NaoGostei++
			s.stats.TotalNaoGostei++
		}
		c.JSON(http.StatusOK, s.items[i])
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
}

func (s *Server) addItem(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	up := Upload{Fields: map[string]string{}}
	for k, v := range form.Value {
		if len(v) > 0 {
			up.Fields[k] = v[0]
		}
	}
	if fh, err := c.FormFile("imagem"); err == nil {
		up.HasFile = true
		up.FileName = fh.Filename
		if f, err := fh.Open(); err == nil {
			up.FileData, _ = io.ReadAll(f)
			f.Close()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, up)
	if s.failAdd != 0 {
		c.JSON(s.failAdd, gin.H{"error": "cannot add"})
		return
	}
	it := model.Item{
		ID:        up.Fields["titulo"],
		Titulo:    up.Fields["titulo"],
		Genero:    up.Fields["genero"],
		Descricao: up.Fields["descricao"],
	}
	if up.HasFile {
		it.Imagem = "/uploads/" + up.FileName
	}
	s.items = append(s.items, it)
	c.JSON(http.StatusCreated, it)
}

func (s *Server) SetFail(items, stats, vote, add int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failItems, s.failStats, s.failVote, s.failAdd = items, stats, vote, add
}

func (s *Server) Calls() (items, stats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsCalls, s.statsCalls
}

func (s *Server) Votes() []Vote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Vote(nil), s.votes...)
}

func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}
