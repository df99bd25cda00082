package indexcatalog

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

const nsField = "ns"

// withNamespace appends an ns field to index documents that lack one, as
// listIndexes on newer servers omits it. Existing fields keep their order.
func withNamespace(doc bson.Raw, namespace string) (bson.Raw, error) {
	if _, err := doc.LookupErr(nsField); err == nil {
		return doc, nil
	}

	elems, err := doc.Elements()
	if err != nil {
		return nil, err
	}

	raw := make([][]byte, 0, len(elems)+1)
	for _, elem := range elems {
		raw = append(raw, elem)
	}
	raw = append(raw, bsoncore.AppendStringElement(nil, nsField, namespace))

	return bson.Raw(bsoncore.BuildDocumentFromElements(nil, raw...)), nil
}
