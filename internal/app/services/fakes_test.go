package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/filestorage"
)

type lookupCall struct {
	Namespace  models.Namespace
	Identifier string
	ExcludeID  int64
}

// fakeLookup holds identifier -> id per namespace
type fakeLookup struct {
	data  map[models.Namespace]map[string]int64
	calls []lookupCall
	err   error
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{data: map[models.Namespace]map[string]int64{}}
}

func (f *fakeLookup) add(ns models.Namespace, identifier string, id int64) {
	if f.data[ns] == nil {
		f.data[ns] = map[string]int64{}
	}
	f.data[ns][identifier] = id
}

func (f *fakeLookup) Exists(_ context.Context, ns models.Namespace, identifier string, excludeID int64) (bool, error) {
	f.calls = append(f.calls, lookupCall{ns, identifier, excludeID})
	if f.err != nil {
		return false, f.err
	}
	id, ok := f.data[ns][identifier]
	return ok && id != excludeID, nil
}

// fakePersonStore keeps copies so the service cannot mutate stored state
// without calling Update.
type fakePersonStore struct {
	entity    models.Entity
	records   map[int64]models.Person
	nextID    int64
	lookup    *fakeLookup
	createErr error
	updateErr error
}

func newFakePersonStore(entity models.Entity, lookup *fakeLookup) *fakePersonStore {
	return &fakePersonStore{entity: entity, records: map[int64]models.Person{}, nextID: 1, lookup: lookup}
}

func (f *fakePersonStore) clone(p models.Person) models.Person {
	c := f.entity.New()
	c.Apply(p.Fields())
	c.SetID(p.GetID())
	c.SetPicture(p.PicturePath())
	return c
}

func (f *fakePersonStore) seed(fields models.Fields) models.Person {
	p := f.entity.New()
	p.Apply(fields)
	if pic, ok := fields["picture"]; ok {
		p.SetPicture(pic)
	}
	p.SetID(f.nextID)
	f.nextID++
	f.records[p.GetID()] = f.clone(p)
	if f.lookup != nil {
		f.lookup.add(f.entity.Namespace, p.Identifier(), p.GetID())
	}
	return p
}

func (f *fakePersonStore) Entity() models.Entity { return f.entity }

func (f *fakePersonStore) Create(_ context.Context, p models.Person) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.SetID(f.nextID)
	f.nextID++
	f.records[p.GetID()] = f.clone(p)
	if f.lookup != nil {
		f.lookup.add(f.entity.Namespace, p.Identifier(), p.GetID())
	}
	return nil
}

func (f *fakePersonStore) GetByID(_ context.Context, id int64) (models.Person, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(f.entity.NotFoundMessage())
	}
	return f.clone(p), nil
}

func (f *fakePersonStore) Update(_ context.Context, p models.Person) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.records[p.GetID()]; !ok {
		return apperrors.NewResourceNotFoundError(f.entity.NotFoundMessage())
	}
	f.records[p.GetID()] = f.clone(p)
	return nil
}

func (f *fakePersonStore) List(_ context.Context, filter models.ListFilter) ([]models.Person, error) {
	out := make([]models.Person, 0)
	for _, p := range f.records {
		fields := p.Fields()
		match := true
		for column, value := range filter.Equals {
			if f.entity.IsFilterable(column) && value != "" && fields[column] != value {
				match = false
			}
		}
		if match && filter.Search != "" {
			found := false
			for _, column := range f.entity.SearchColumns {
				if strings.Contains(strings.ToLower(fields[column]), strings.ToLower(filter.Search)) {
					found = true
				}
			}
			match = found
		}
		if match {
			out = append(out, f.clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fields()["name"] < out[j].Fields()["name"] })
	return out, nil
}

func (f *fakePersonStore) Distinct(_ context.Context, column string, equals map[string]string) ([]string, error) {
	seen := map[string]bool{}
	for _, p := range f.records {
		fields := p.Fields()
		if v := fields[column]; v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// fakeFiles pretends to write files and remembers what exists
type fakeFiles struct {
	existing  map[string]bool
	stored    []string
	discarded []string
	storeErr  error
	n         int
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{existing: map[string]bool{}}
}

func (f *fakeFiles) Store(fh *multipart.FileHeader, policy filestorage.UploadPolicy) (string, error) {
	if fh == nil {
		return "", nil
	}
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.n++
	p := fmt.Sprintf("uploads/%s/%s%d.png", policy.SubDir, policy.Prefix, f.n)
	f.existing[p] = true
	f.stored = append(f.stored, p)
	return p, nil
}

func (f *fakeFiles) Discard(p string) error {
	delete(f.existing, p)
	f.discarded = append(f.discarded, p)
	return nil
}

func picture(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 128}
}
