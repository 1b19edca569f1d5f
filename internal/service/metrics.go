package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yatube",
		Name:      "posts_created_total",
		Help:      "Posts published through the authoring workflow",
	})

	postsEdited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yatube",
		Name:      "posts_edited_total",
		Help:      "Posts edited by their authors",
	})

	authoringRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yatube",
		Name:      "authoring_rejections_total",
		Help:      "Create or edit attempts rejected before reaching storage",
	}, []string{"operation", "reason"})
)
