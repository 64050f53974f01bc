package usecase

// Project merges the catalog, enablement record, and local scan into the
// ordered sequence of AssetViews the presentation layer reads. It is a pure
// function: it mutates none of its inputs and its output depends only on
// them.
func Project(cat *Catalog, enablement EnablementRecord, scan LocalScan) []AssetView {
	views := make([]AssetView, 0, len(cat.Instructions)+len(cat.Prompts)+len(cat.ChatModes)+len(cat.Collections))

	for _, entry := range cat.FileEntriesSorted() {
		views = append(views, projectFileAsset(entry, cat, enablement, scan))
	}

	for _, col := range cat.Collections {
		views = append(views, projectCollection(col, cat, enablement, views))
	}

	return views
}

func projectFileAsset(entry CatalogEntry, cat *Catalog, enablement EnablementRecord, scan LocalScan) AssetView {
	key := entry.Key()
	view := AssetView{
		Kind:        entry.Kind,
		Path:        entry.Path,
		Slug:        entry.Slug,
		Name:        entry.Name,
		Description: entry.Description,
		Tags:        entry.Tags,
		Instruction: entry.Instruction,
		Prompt:      entry.Prompt,
		ChatMode:    entry.ChatMode,
		Collections: cat.Membership[key],
		LocalStatus: LocalStatusFor(entry, scan),
	}

	if v, ok := enablement.Get(key); ok {
		view.Explicit = boolPtr(v)
	}
	view.Inherited = inheritedValue(key, cat, enablement)
	view.EffectiveEnabled = resolveEffective(view.Explicit, view.Inherited)
	return view
}

// inheritedValue scans the collections that list key, in lexicographic
// collection-id order, and returns the first explicit toggle found on the
// owning collection itself. Returns nil if no owning collection has an
// explicit value.
func inheritedValue(key AssetKey, cat *Catalog, enablement EnablementRecord) *bool {
	for _, collectionID := range cat.Membership[key] {
		colKey := AssetKey{Kind: KindCollection, Path: collectionPathByID(cat, collectionID)}
		if v, ok := enablement.Get(colKey); ok {
			return boolPtr(v)
		}
	}
	return nil
}

func collectionPathByID(cat *Catalog, id string) string {
	for _, c := range cat.Collections {
		if c.ID == id {
			return c.Path
		}
	}
	return ""
}

func projectCollection(col CollectionEntry, cat *Catalog, enablement EnablementRecord, prior []AssetView) AssetView {
	key := AssetKey{Kind: KindCollection, Path: col.Path}
	view := AssetView{
		Kind:        KindCollection,
		Path:        col.Path,
		Slug:        col.ID,
		Name:        col.Name,
		Description: col.Description,
		Tags:        col.Tags,
		LocalStatus: StatusNotApplicable,
		MemberCount: len(col.Items),
	}

	if v, ok := enablement.Get(key); ok {
		view.Explicit = boolPtr(v)
	}
	// Inherited is always absent for collections: spec §4.6.
	view.EffectiveEnabled = resolveEffective(view.Explicit, nil)

	memberByKey := make(map[AssetKey]AssetView, len(prior))
	for _, v := range prior {
		memberByKey[v.Key()] = v
	}
	for _, item := range col.Items {
		mv, ok := memberByKey[AssetKey{Kind: item.Kind, Path: item.Path}]
		if !ok {
			continue
		}
		if mv.EffectiveEnabled {
			view.EnabledCount++
		}
		if mv.LocalStatus == StatusDiff {
			view.DiffCount++
		}
	}

	return view
}

func resolveEffective(explicit, inherited *bool) bool {
	if explicit != nil {
		return *explicit
	}
	if inherited != nil {
		return *inherited
	}
	return false
}

func boolPtr(v bool) *bool { return &v }
