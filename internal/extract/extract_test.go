package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bauradar/baugesuche-crawler/internal/permit"
)

const zhCompanyDetail = `<?xml version="1.0" encoding="UTF-8"?>
<bpZH01:publication xmlns:bpZH01="https://amtsblattportal.ch/api/v1/schemas/bp-zh01">
  <meta>
    <publicationNumber>12345</publicationNumber>
    <publicationDate>2024-05-01</publicationDate>
  </meta>
  <content>
    <projectDescription>Neubau Mehrfamilienhaus mit Tiefgarage</projectDescription>
    <buildingContractor>
      <companies>
        <company>
          <name>Muster AG</name>
          <customAddress>Bahnhofstrasse 1
8001 Zürich</customAddress>
        </company>
      </companies>
    </buildingContractor>
  </content>
</bpZH01:publication>`

const zhPersonDetail = `<?xml version="1.0" encoding="UTF-8"?>
<bpZH01:publication xmlns:bpZH01="https://amtsblattportal.ch/api/v1/schemas/bp-zh01">
  <content>
    <buildingContractor>
      <persons>
        <person>
          <prename>Anna</prename>
          <name>Keller</name>
          <addressSwitzerland>
            <street>Seestrasse</street>
            <houseNumber>12</houseNumber>
            <swissZipCode>8700</swissZipCode>
            <town>Küsnacht</town>
          </addressSwitzerland>
        </person>
      </persons>
    </buildingContractor>
  </content>
</bpZH01:publication>`

const zgApplicantDetail = `<?xml version="1.0" encoding="UTF-8"?>
<bpZG:publication xmlns:bpZG="https://amtsblattportal.ch/api/v1/schemas/bp-zg">
  <content>
    <gesuchsteller>
      <companies>
        <company>
          <name>Immobilien Zug GmbH</name>
          <customAddress>Baarerstrasse 5, 6300 Zug</customAddress>
        </company>
      </companies>
    </gesuchsteller>
  </content>
</bpZG:publication>`

const heuristicDetail = `<?xml version="1.0" encoding="UTF-8"?>
<publication>
  <body>
    <bauherrschaftText>Erben  Gemeinschaft   Meier</bauherrschaftText>
  </body>
</publication>`

const noApplicantDetail = `<?xml version="1.0" encoding="UTF-8"?>
<publication>
  <content>
    <projectDescription>Neubau Mehrfamilienhaus</projectDescription>
  </content>
</publication>`

func TestApplicant_ZurichCompany(t *testing.T) {
	t.Parallel()

	res, err := Applicant(zhCompanyDetail, permit.CantonZH)
	require.NoError(t, err)
	assert.Equal(t, "Muster AG", res.Name)
	assert.Equal(t, "Bahnhofstrasse 1, 8001 Zürich", res.Address)
}

func TestApplicant_ZurichPerson(t *testing.T) {
	t.Parallel()

	res, err := Applicant(zhPersonDetail, permit.CantonZH)
	require.NoError(t, err)
	assert.Equal(t, "Anna Keller", res.Name)
	assert.Equal(t, "Seestrasse 12, 8700 Küsnacht", res.Address)
}

func TestApplicant_ZugContainer(t *testing.T) {
	t.Parallel()

	res, err := Applicant(zgApplicantDetail, permit.CantonZG)
	require.NoError(t, err)
	assert.Equal(t, "Immobilien Zug GmbH", res.Name)
	assert.Equal(t, "Baarerstrasse 5, 6300 Zug", res.Address)
}

func TestApplicant_HeuristicFallback(t *testing.T) {
	t.Parallel()

	// No content/buildingContractor block; the tag-name heuristic catches
	// the bauherrschaftText element and collapses its whitespace.
	res, err := Applicant(heuristicDetail, permit.CantonZH)
	require.NoError(t, err)
	assert.Equal(t, "Erben Gemeinschaft Meier", res.Name)
	assert.Empty(t, res.Address)
}

func TestApplicant_MalformedXML(t *testing.T) {
	t.Parallel()

	_, err := Applicant("<content><buildingContractor></content>", permit.CantonZH)
	require.Error(t, err)

	var extractErr *Error
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, ReasonMalformedXML, extractErr.Reason)
}

func TestApplicant_NoApplicant(t *testing.T) {
	t.Parallel()

	_, err := Applicant(noApplicantDetail, permit.CantonZH)
	require.Error(t, err)

	var extractErr *Error
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, ReasonNoApplicant, extractErr.Reason)
}

func TestClassifierText(t *testing.T) {
	t.Parallel()

	text := ClassifierText(zhCompanyDetail, "Bauprojekt Musterstrasse")
	assert.Contains(t, text, "Bauprojekt Musterstrasse")
	assert.Contains(t, text, "Neubau Mehrfamilienhaus mit Tiefgarage")
	assert.Contains(t, text, "Muster AG")
}

func TestClassifierText_MalformedXMLKeepsTitle(t *testing.T) {
	t.Parallel()

	text := ClassifierText("", "Neubau Mehrfamilienhaus")
	assert.Equal(t, "Neubau Mehrfamilienhaus", text)
}
