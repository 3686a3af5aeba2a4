package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/quote"
	"github.com/Simplici0/casework/internal/report"
)

// Job is a self-contained pricing request: the three tiers for one section
// plus the catalogs to price it against.
type Job struct {
	Organization *model.OrganizationDefaults `yaml:"organization"`
	Project      *model.ProjectDefaults      `yaml:"project"`
	Section      *model.Section              `yaml:"section"`
	Catalog      catalog.Snapshot            `yaml:"catalog"`
}

func loadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("read job file: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("parse job file %s: %w", path, err)
	}

	if job.Organization == nil {
		return Job{}, errors.New("job file has no organization block")
	}
	if job.Section == nil {
		return Job{}, errors.New("job file has no section block")
	}
	// Organization lists are never absent.
	if job.Organization.FaceFinish == nil {
		job.Organization.FaceFinish = []int64{}
	}
	if job.Organization.BoxFinish == nil {
		job.Organization.BoxFinish = []int64{}
	}
	return job, nil
}

func (j Job) quote() (quote.Quote, error) {
	return quote.Section(j.Section, j.Project, j.Organization, j.Catalog)
}

func (j Job) document(q quote.Quote) report.Document {
	title := j.Section.Name
	if j.Project != nil && j.Project.Name != "" {
		title = j.Project.Name + " / " + j.Section.Name
	}
	return report.Document{Title: title, Subtitle: j.Organization.Name, Table: q.Table}
}
