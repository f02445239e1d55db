package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/bubble"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/live"
	"github.com/Zachkp/portfolio/internal/skills"
	"github.com/Zachkp/portfolio/internal/store"
)

// site bundles what the handlers need.
type site struct {
	cfg    config.Config
	db     *store.Store
	skills skills.Catalog
	relay  contact.Relay
	live   *live.Server
	admin  *admin
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	catalog, err := skills.Load(cfg.SkillsFile)
	if err != nil {
		log.Fatal("Failed to load skills:", err)
	}
	log.Printf("Loaded %d skills", catalog.Len())

	s := newSite(cfg, db, catalog, contact.NewMailer(cfg.SMTP, nil))
	go s.cleanupOldVisitorData()

	r := setupRouter(s)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func newSite(cfg config.Config, db *store.Store, catalog skills.Catalog, relay contact.Relay) *site {
	return &site{
		cfg:    cfg,
		db:     db,
		skills: catalog,
		relay:  relay,
		live:   live.NewServer(catalog.Skills(), cfg.FrameHz, db, nil),
		admin:  newAdmin(cfg.AdminUsername, cfg.AdminPassword),
	}
}

func setupRouter(s *site) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.visitorTrackingMiddleware())

	// Home page route
	r.GET("/", func(c *gin.Context) {
		// Placeholder frame: what every client sees before the live session
		// reports its viewport.
		placeholder := bubble.NewField(s.skills.Skills()).Snapshot()
		c.HTML(http.StatusOK, "index.html", gin.H{
			"aboutMeContent":  AboutMe,
			"projects":        Projects,
			"skillCategories": SkillCategories,
			"bubbles":         placeholder.Tokens,
			"bubbleSize":      int(bubble.MinTokenSize),
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"skills":          s.skills.Len(),
			"live_sessions":   s.live.Active(),
			"frame_rate":      s.cfg.FrameHz,
			"smtp_configured": s.cfg.SMTP.Configured(),
		})
	})

	// Live bubble strip
	r.GET("/ws/bubbles", gin.WrapF(s.live.Handler()))

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "timeline.html", gin.H{
			"heading": "Work Experience",
			"items":   Work,
		})
	})

	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "timeline.html", gin.H{
			"heading": "Education",
			"items":   Education,
		})
	})

	// Handle contact form submission with HTMX
	r.POST("/contact", s.handleContact)

	s.setupAdminRoutes(r)
	return r
}

func (s *site) handleContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	id, err := s.db.RecordMessage(ctx, store.Message{Name: form.FullName, Email: form.Email, Body: form.Message})
	if err != nil {
		log.Printf("Error storing contact message: %v", err)
	}

	if err := s.relay.Send(form); err != nil {
		// The message is kept; it shows as undelivered on the dashboard.
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	if id != 0 {
		if err := s.db.MarkDelivered(ctx, id); err != nil {
			log.Printf("Error marking message %d delivered: %v", id, err)
		}
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
