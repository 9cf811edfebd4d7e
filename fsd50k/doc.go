// SPDX-License-Identifier: EPL-2.0

// Package fsd50k turns FSD50K ground truth into single-label clip tables.
//
// FSD50K rows list every AudioSet label that applies to a clip, ancestors
// included. Unsmear drops the ancestors using the AudioSet ontology, and
// ProjectMonolabel reduces each row to one category with preference for
// the requested classes:
//
//	ont, err := fsd50k.LoadOntology("ontology.json")
//	if err != nil {
//	    return err
//	}
//	sets, err := fsd50k.Prepare(fsd50k.Config{
//	    CSVFolder:  "FSD50K.ground_truth",
//	    ClassNames: []string{"Bark", "Meow"},
//	}, ont, logger)
//
// Prepare writes its intermediate tables next to the input CSVs so they
// can be inspected.
package fsd50k
